// Package seed provides the rows a fresh form starts with, either the
// built-in sample or a JSON/YAML seed file.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/model"
)

// File is the on-disk seed layout:
//
//	partners:
//	  - name: Booking.com (1234)
//	    commission: "15"
//	    codes: [OTA-RO-FLEX, OTA-RO-NANR]
//	rooms: [Chambre Double Classique]
//	plans: [OTA-RO-FLEX - OTA RO FLEX]
type File struct {
	Partners []PartnerRow `json:"partners" yaml:"partners"`
	Rooms    []string     `json:"rooms" yaml:"rooms"`
	Plans    []string     `json:"plans" yaml:"plans"`
}

// PartnerRow is one partner entry of a seed file. Commission is kept as text
// so seeds can carry values the validator will reject.
type PartnerRow struct {
	Name       string   `json:"name" yaml:"name"`
	Commission string   `json:"commission" yaml:"commission"`
	Codes      []string `json:"codes" yaml:"codes"`
}

// Default returns the sample rows shown when the form first opens: one
// filled and one blank row per group.
func Default(opts ...model.FormOption) *model.Form {
	form := model.NewForm(opts...)
	form.AddPartner("Booking.com (1234)", "15", "OTA-RO-FLEX\nOTA-RO-NANR")
	form.AddPartner("", "", "")
	form.AddRoom("Chambre Double Classique")
	form.AddRoom("")
	form.AddPlan("OTA-RO-FLEX - OTA RO FLEX")
	form.AddPlan("")
	return form
}

// Empty returns a form with one blank row per group.
func Empty(opts ...model.FormOption) *model.Form {
	form := model.NewForm(opts...)
	form.AddPartner("", "", "")
	form.AddRoom("")
	form.AddPlan("")
	return form
}

// Load reads a seed file from disk. Previously exported documents are
// accepted too.
func Load(path string, opts ...model.FormOption) (*model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data, path, opts...)
}

// Parse decodes a seed file or an exported document. source names the input
// in error messages.
func Parse(data []byte, source string, opts ...model.FormOption) (*model.Form, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("seed: file %s is empty", source)
	}

	var probe struct {
		DisplayOrder any `yaml:"displayOrder"`
	}
	if err := yaml.Unmarshal(data, &probe); err == nil && probe.DisplayOrder != nil {
		doc, err := document.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("seed: parse %s: %w", source, err)
		}
		return document.ToForm(doc, opts...), nil
	}

	file, err := parseFile(data, source)
	if err != nil {
		return nil, err
	}
	return file.Form(opts...), nil
}

func parseFile(data []byte, source string) (File, error) {
	var file File
	if err := json.Unmarshal(data, &file); err == nil {
		return file, nil
	}

	file = File{}
	if err := yaml.Unmarshal(data, &file); err == nil {
		return file, nil
	}

	return File{}, fmt.Errorf("seed: parse %s: invalid JSON or YAML", source)
}

// Form builds an editable form from the file rows, in file order.
func (f File) Form(opts ...model.FormOption) *model.Form {
	form := model.NewForm(opts...)
	for _, p := range f.Partners {
		form.AddPartner(p.Name, p.Commission, strings.Join(p.Codes, "\n"))
	}
	for _, room := range f.Rooms {
		form.AddRoom(room)
	}
	for _, plan := range f.Plans {
		form.AddPlan(plan)
	}
	return form
}
