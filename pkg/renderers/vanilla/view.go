package vanilla

import (
	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/validation"
)

// View is everything the page template needs. Build it with NewView.
type View struct {
	Partners []PartnerRow
	Rooms    []EntryRow
	Plans    []EntryRow

	// Message is the aggregate validation message, empty when valid.
	Message string
	// Output is the last generated document text.
	Output string
	// Notice is a one-off status line (e.g. a clipboard failure).
	Notice   string
	Filename string
	MIMEType string

	// FormAction and DownloadAction are the POST targets of the page.
	FormAction     string
	DownloadAction string
}

// PartnerRow is one partner row as rendered.
type PartnerRow struct {
	ID              string
	Name            string
	Commission      string
	Codes           string
	NameField       string
	CommissionField string
	CodesField      string
	NameError       string
	CommissionError string
	Invalid         bool
	First           bool
	Last            bool
}

// EntryRow is one room or plan row as rendered.
type EntryRow struct {
	ID         string
	Value      string
	ValueField string
	Error      string
	Invalid    bool
	First      bool
	Last       bool
}

// NewView lays out form with the marks from result.
func NewView(form *model.Form, result validation.Result) View {
	view := View{
		Partners:       []PartnerRow{},
		Rooms:          []EntryRow{},
		Plans:          []EntryRow{},
		Message:        result.Message(),
		Filename:       document.DefaultFilename,
		MIMEType:       document.MIMEType,
		FormAction:     "/",
		DownloadAction: "/download",
	}
	if form == nil {
		return view
	}

	marks := result.Fields()
	first := func(path string) string {
		if msgs := marks[path]; len(msgs) > 0 {
			return msgs[0]
		}
		return ""
	}

	partners := form.Partners.Items()
	for i, p := range partners {
		namePath := model.Path(model.KindPartners, p.ID, model.FieldName)
		commissionPath := model.Path(model.KindPartners, p.ID, model.FieldCommission)
		nameErr, commissionErr := first(namePath), first(commissionPath)
		view.Partners = append(view.Partners, PartnerRow{
			ID:              p.ID.String(),
			Name:            p.Name,
			Commission:      p.Commission,
			Codes:           p.Codes,
			NameField:       namePath,
			CommissionField: commissionPath,
			CodesField:      model.Path(model.KindPartners, p.ID, model.FieldCodes),
			NameError:       nameErr,
			CommissionError: commissionErr,
			Invalid:         nameErr != "" || commissionErr != "",
			First:           i == 0,
			Last:            i == len(partners)-1,
		})
	}

	view.Rooms = entryRows(model.KindRooms, form.Rooms.Items(), first)
	view.Plans = entryRows(model.KindPlans, form.Plans.Items(), first)
	return view
}

func entryRows(kind model.Kind, entries []model.Entry, first func(string) string) []EntryRow {
	rows := make([]EntryRow, 0, len(entries))
	for i, e := range entries {
		path := model.Path(kind, e.ID, model.FieldValue)
		msg := first(path)
		rows = append(rows, EntryRow{
			ID:         e.ID.String(),
			Value:      e.Value,
			ValueField: path,
			Error:      msg,
			Invalid:    msg != "",
			First:      i == 0,
			Last:       i == len(entries)-1,
		})
	}
	return rows
}
