package main

import (
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/blocky/ear"
	"github.com/blocky/ear/pkg/ear_error"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatCBOR = "cbor"
)

var outputFormats = []string{formatText, formatJSON, formatYAML, formatCBOR}

type recordReport struct {
	Name              string `cbor:"name" json:"name" yaml:"name"`
	Status            string `cbor:"status" json:"status" yaml:"status"`
	AppraisalPolicyID string `cbor:"appraisal_policy_id,omitempty" json:"appraisal_policy_id,omitempty" yaml:"appraisal_policy_id,omitempty"`
	AttestedPublicKey string `cbor:"attested_public_key,omitempty" json:"attested_public_key,omitempty" yaml:"attested_public_key,omitempty"`

	tier ear.Tier
}

type report struct {
	Profile string         `cbor:"profile" json:"profile" yaml:"profile"`
	Layout  string         `cbor:"layout" json:"layout" yaml:"layout"`
	Status  string         `cbor:"status" json:"status" yaml:"status"`
	Records []recordReport `cbor:"records,omitempty" json:"records,omitempty" yaml:"records,omitempty"`

	tier ear.Tier
}

func makeReport(result *ear.EAR, records []string) (report, error) {
	overall, err := result.OverallTier()
	if err != nil {
		return report{}, fmt.Errorf("getting overall status: %w", err)
	}

	rep := report{
		Profile: result.Profile(),
		Layout:  result.Layout().String(),
		Status:  overall.String(),
		tier:    overall,
	}

	if len(records) == 0 && result.Layout() == ear.LayoutModular {
		records, err = result.AppraisalRecords()
		if err != nil {
			return report{}, fmt.Errorf("listing appraisal records: %w", err)
		}
	}

	for _, name := range records {
		rec, err := makeRecordReport(result, name)
		if err != nil {
			return report{}, err
		}
		rep.Records = append(rep.Records, rec)
	}
	return rep, nil
}

func makeRecordReport(result *ear.EAR, name string) (recordReport, error) {
	tier, err := result.Tier(name)
	if err != nil {
		return recordReport{}, fmt.Errorf("getting status of %s: %w", name, err)
	}

	rec := recordReport{Name: name, Status: tier.String(), tier: tier}

	policyID, err := result.AppraisalPolicyID(name)
	switch {
	case err == nil:
		rec.AppraisalPolicyID = policyID
	case !errors.Is(err, ear_error.ErrFieldMissingOrWrongType):
		return recordReport{}, fmt.Errorf("getting appraisal policy of %s: %w", name, err)
	}

	akpub, err := result.AttestedPublicKey(name)
	switch {
	case err == nil:
		rec.AttestedPublicKey = string(pem.EncodeToMemory(&pem.Block{
			Type:  "PUBLIC KEY",
			Bytes: akpub,
		}))
	case !errors.Is(err, ear_error.ErrFieldMissingOrWrongType):
		return recordReport{}, fmt.Errorf("getting attested key of %s: %w", name, err)
	}

	return rec, nil
}

func writeReport(w io.Writer, rep report, format string) error {
	switch format {
	case formatText:
		return writeText(w, rep)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case formatCBOR:
		enc, err := cbor.Marshal(rep)
		if err != nil {
			return err
		}
		_, err = w.Write(enc)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeText(w io.Writer, rep report) error {
	if _, err := fmt.Fprintf(w, "EAR verified (%s)\n", rep.Profile); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "overall status: %s\n", tierColor(rep.tier).Sprint(rep.Status)); err != nil {
		return err
	}

	for _, rec := range rep.Records {
		if _, err := fmt.Fprintf(w, "%s status: %s\n", rec.Name, tierColor(rec.tier).Sprint(rec.Status)); err != nil {
			return err
		}
		if rec.AppraisalPolicyID != "" {
			if _, err := fmt.Fprintf(w, "%s appraisal policy: %s\n", rec.Name, rec.AppraisalPolicyID); err != nil {
				return err
			}
		}
		if rec.AttestedPublicKey != "" {
			if _, err := fmt.Fprintf(w, "%s attested key:\n%s", rec.Name, rec.AttestedPublicKey); err != nil {
				return err
			}
		}
	}
	return nil
}

func tierColor(tier ear.Tier) *color.Color {
	switch tier {
	case ear.TierAffirming:
		return color.New(color.FgGreen)
	case ear.TierWarning:
		return color.New(color.FgYellow)
	case ear.TierContraindicated:
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.Reset)
}
