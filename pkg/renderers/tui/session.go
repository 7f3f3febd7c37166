// Package tui runs the hotel configuration form as an interactive terminal
// session built on survey prompts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/export"
	"github.com/goliatone/go-hotelconfig/pkg/generator"
	"github.com/goliatone/go-hotelconfig/pkg/model"
)

type action string

const (
	actionAddPartner action = "Add partner"
	actionAddRoom    action = "Add room type"
	actionAddPlan    action = "Add rate plan"
	actionEdit       action = "Edit entry"
	actionRemove     action = "Remove entry"
	actionMove       action = "Move entry"
	actionGenerate   action = "Generate JSON"
	actionCopy       action = "Copy to clipboard"
	actionSaveAs     action = "Save as..."
	actionDownload   action = "Download"
	actionQuit       action = "Quit"
)

const backLabel = "Back"

var kindLabels = map[model.Kind]string{
	model.KindPartners: "Partners",
	model.KindRooms:    "Room types",
	model.KindPlans:    "Rate plans",
}

// Session edits one form through a menu loop. Every menu choice is a
// discrete event handled to completion before the next prompt.
type Session struct {
	form      *model.Form
	state     *State
	driver    PromptDriver
	out       io.Writer
	exporter  *export.Exporter
	targets   *export.Registry
	generator *generator.Generator
	filename  string
	theme     Theme
	logger    *zap.Logger
}

// NewSession wires a session around form. Defaults: survey prompts on
// stdout, an exporter whose save dialog prompts through the same driver,
// a default generator.
func NewSession(form *model.Form, options ...Option) (*Session, error) {
	if form == nil {
		return nil, ErrNoForm
	}

	s := &Session{
		form:     form,
		state:    NewState(),
		out:      os.Stdout,
		filename: document.DefaultFilename,
		theme:    DefaultTheme,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	if s.generator == nil {
		s.generator = generator.New(generator.WithLogger(s.logger))
	}
	if s.exporter == nil {
		s.exporter = export.New(
			export.WithSaveDialog(NewSaveDialog(s.driver)),
			export.WithLogger(s.logger),
		)
	}
	s.targets = s.exporter.Targets()

	return s, nil
}

// Form returns the form being edited.
func (s *Session) Form() *model.Form {
	return s.form
}

// State exposes the outcome of the last generate.
func (s *Session) State() *State {
	return s.state
}

// Run loops until the user quits, aborts the main menu, or ctx ends. Errors
// raised while handling an action are reported and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.info(ctx, s.summary()); err != nil {
			return err
		}

		actions := s.actions()
		labels := make([]string, len(actions))
		for i, a := range actions {
			labels[i] = string(a)
		}

		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:  s.theme.PromptPrefix + "What next?",
			Options:  labels,
			PageSize: len(labels),
		})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		chosen := actions[idx]
		if chosen == actionQuit {
			return nil
		}

		if err := s.dispatch(ctx, chosen); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, ErrAborted) {
				continue
			}
			s.logger.Warn("action failed", zap.String("action", string(chosen)), zap.Error(err))
			if err := s.errorf(ctx, "%v", err); err != nil {
				return err
			}
		}
	}
}

func (s *Session) actions() []action {
	out := []action{
		actionAddPartner, actionAddRoom, actionAddPlan,
		actionEdit, actionRemove, actionMove,
		actionGenerate,
	}
	if _, ok := s.state.Output(); ok {
		out = append(out, actionCopy, actionSaveAs, actionDownload)
	}
	return append(out, actionQuit)
}

// dispatch handles a single menu action.
func (s *Session) dispatch(ctx context.Context, a action) error {
	switch a {
	case actionAddPartner:
		return s.add(ctx, model.KindPartners)
	case actionAddRoom:
		return s.add(ctx, model.KindRooms)
	case actionAddPlan:
		return s.add(ctx, model.KindPlans)
	case actionEdit:
		return s.edit(ctx)
	case actionRemove:
		return s.remove(ctx)
	case actionMove:
		return s.move(ctx)
	case actionGenerate:
		return s.generate(ctx)
	case actionCopy:
		return s.copy(ctx)
	case actionSaveAs:
		return s.saveAs(ctx)
	case actionDownload:
		return s.download(ctx)
	default:
		return fmt.Errorf("tui: unknown action %q", a)
	}
}

var partnerFields = []string{model.FieldName, model.FieldCommission, model.FieldCodes}

var fieldTitles = map[string]string{
	model.FieldName:       "Partner identifier *",
	model.FieldCommission: "Commission (%)",
	model.FieldCodes:      "Rate codes (one per line)",
}

var fieldHelp = map[string]string{
	model.FieldName:       "Name and hotel id of the channel, e.g. Booking.com (1234).",
	model.FieldCommission: "Optional. An empty answer means no commission.",
}

// add appends a blank row and prompts for each of its fields.
func (s *Session) add(ctx context.Context, kind model.Kind) error {
	id, err := s.form.Add(kind, nil)
	if err != nil {
		return err
	}
	if kind != model.KindPartners {
		return s.editField(ctx, kind, id, model.FieldValue)
	}
	for _, field := range partnerFields {
		if err := s.editField(ctx, kind, id, field); err != nil {
			return err
		}
	}
	return nil
}

// edit changes one field at a time. Partners offer a field menu until the
// user picks Done.
func (s *Session) edit(ctx context.Context) error {
	kind, id, ok, err := s.pickEntry(ctx, "Edit which entry?")
	if err != nil || !ok {
		return err
	}
	if kind != model.KindPartners {
		return s.editField(ctx, kind, id, model.FieldValue)
	}

	for {
		p, ok := s.form.Partners.Get(id)
		if !ok {
			return model.ErrEntryNotFound
		}
		options := []string{
			"Partner identifier: " + display(p.Name),
			"Commission: " + display(p.Commission),
			"Rate codes: " + display(strings.Join(document.SplitCodes(p.Codes), ", ")),
			"Done",
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "Edit which field?", Options: options})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(partnerFields) {
			return nil
		}
		if err := s.editField(ctx, kind, id, partnerFields[idx]); err != nil {
			return err
		}
	}
}

// editField prompts for one field. The answer replaces the value as typed,
// so an empty answer clears the field. The current value is shown in the
// prompt and offered as a Tab completion.
func (s *Session) editField(ctx context.Context, kind model.Kind, id uuid.UUID, field string) error {
	current, err := s.fieldValue(kind, id, field)
	if err != nil {
		return err
	}

	title := fieldTitles[field]
	switch kind {
	case model.KindRooms:
		title = "Room type name *"
	case model.KindPlans:
		title = "Rate plan name *"
	}

	var value string
	if field == model.FieldCodes {
		help := "An empty answer removes every code."
		if codes := document.SplitCodes(current); len(codes) > 0 {
			help = "Current: " + strings.Join(codes, ", ") + ". " + help
		}
		value, err = s.driver.TextArea(ctx, TextAreaConfig{
			Message: s.label(title, kind, id, field),
			Help:    help,
		})
	} else {
		cfg := InputConfig{
			Message: s.label(title, kind, id, field),
			Help:    fieldHelp[field],
		}
		if strings.TrimSpace(current) != "" {
			cfg.Message += fmt.Sprintf(" [current: %s]", current)
			cfg.Suggest = []string{current}
		}
		value, err = s.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}
	return s.set(kind, id, field, value)
}

func (s *Session) fieldValue(kind model.Kind, id uuid.UUID, field string) (string, error) {
	if kind == model.KindPartners {
		p, ok := s.form.Partners.Get(id)
		if !ok {
			return "", model.ErrEntryNotFound
		}
		switch field {
		case model.FieldName:
			return p.Name, nil
		case model.FieldCommission:
			return p.Commission, nil
		case model.FieldCodes:
			return p.Codes, nil
		}
		return "", fmt.Errorf("tui: unknown partner field %q", field)
	}

	entries, err := s.form.Entries(kind)
	if err != nil {
		return "", err
	}
	e, ok := entries.Get(id)
	if !ok {
		return "", model.ErrEntryNotFound
	}
	return e.Value, nil
}

func (s *Session) set(kind model.Kind, id uuid.UUID, field, value string) error {
	if err := s.form.SetField(kind, id, field, value); err != nil {
		return err
	}
	s.state.Clear(model.Path(kind, id, field))
	return nil
}

func (s *Session) remove(ctx context.Context) error {
	kind, id, ok, err := s.pickEntry(ctx, "Remove which entry?")
	if err != nil || !ok {
		return err
	}
	return s.form.Remove(kind, id)
}

func (s *Session) move(ctx context.Context) error {
	kind, id, ok, err := s.pickEntry(ctx, "Move which entry?")
	if err != nil || !ok {
		return err
	}

	directions := []model.Direction{model.Up, model.Down}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: "Direction",
		Options: []string{model.Up.String(), model.Down.String()},
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(directions) {
		return nil
	}
	_, err = s.form.Move(kind, id, directions[idx])
	return err
}

// pickEntry asks for a group then a row. ok is false when the user backs out.
func (s *Session) pickEntry(ctx context.Context, message string) (model.Kind, uuid.UUID, bool, error) {
	kinds := model.Kinds()
	kindOptions := make([]string, 0, len(kinds)+1)
	for _, kind := range kinds {
		kindOptions = append(kindOptions, fmt.Sprintf("%s (%d)", kindLabels[kind], s.form.Len(kind)))
	}
	kindOptions = append(kindOptions, backLabel)

	k, err := s.driver.Select(ctx, SelectConfig{Message: "Which list?", Options: kindOptions})
	if err != nil {
		return "", uuid.Nil, false, err
	}
	if k < 0 || k >= len(kinds) {
		return "", uuid.Nil, false, nil
	}
	kind := kinds[k]

	rows := s.rows(kind)
	if len(rows) == 0 {
		return kind, uuid.Nil, false, s.info(ctx, fmt.Sprintf("%s is empty.", kindLabels[kind]))
	}

	options := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		options = append(options, r.label)
	}
	options = append(options, backLabel)

	i, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return "", uuid.Nil, false, err
	}
	if i < 0 || i >= len(rows) {
		return kind, uuid.Nil, false, nil
	}
	return kind, rows[i].id, true, nil
}

type row struct {
	id    uuid.UUID
	label string
}

func (s *Session) rows(kind model.Kind) []row {
	var out []row
	if kind == model.KindPartners {
		for i, p := range s.form.Partners.Items() {
			text := display(p.Name)
			if c := strings.TrimSpace(p.Commission); c != "" {
				text += " · " + c + "%"
			}
			if codes := document.SplitCodes(p.Codes); len(codes) > 0 {
				text += " · " + strings.Join(codes, ", ")
			}
			out = append(out, row{id: p.ID, label: s.rowLabel(i, text, s.partnerMarked(p.ID))})
		}
		return out
	}

	entries, err := s.form.Entries(kind)
	if err != nil {
		return nil
	}
	for i, e := range entries.Items() {
		marked := s.state.Marked(model.Path(kind, e.ID, model.FieldValue))
		out = append(out, row{id: e.ID, label: s.rowLabel(i, display(e.Value), marked)})
	}
	return out
}

func (s *Session) partnerMarked(id uuid.UUID) bool {
	for _, field := range []string{model.FieldName, model.FieldCommission, model.FieldCodes} {
		if s.state.Marked(model.Path(model.KindPartners, id, field)) {
			return true
		}
	}
	return false
}

func (s *Session) rowLabel(i int, text string, marked bool) string {
	prefix := "  "
	if marked {
		prefix = s.theme.Marker + " "
	}
	return fmt.Sprintf("%s%d. %s", prefix, i+1, text)
}

func display(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(empty)"
	}
	return value
}

// label appends the first mark message for a field to a prompt title.
func (s *Session) label(title string, kind model.Kind, id uuid.UUID, field string) string {
	marks := s.state.MarksFor(model.Path(kind, id, field))
	if len(marks) == 0 {
		return s.theme.PromptPrefix + title
	}
	return fmt.Sprintf("%s%s (%s)", s.theme.PromptPrefix, title, marks[0])
}

func (s *Session) summary() string {
	var b strings.Builder
	for _, kind := range model.Kinds() {
		fmt.Fprintf(&b, "%s:\n", kindLabels[kind])
		rows := s.rows(kind)
		if len(rows) == 0 {
			b.WriteString("  (none)\n")
		}
		for _, r := range rows {
			b.WriteString(r.label)
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) generate(ctx context.Context) error {
	out, err := s.generator.Generate(ctx, s.form)
	s.state.Apply(out, err)
	if err != nil {
		if !out.Validation.Valid {
			lines := []string{out.Validation.Message()}
			for _, issue := range out.Validation.Issues {
				lines = append(lines, fmt.Sprintf("  %s %s", s.theme.Marker, s.describe(issue.Kind, issue.ID, issue.Message)))
			}
			return s.errorf(ctx, "%s", strings.Join(lines, "\n"))
		}
		return err
	}
	return s.info(ctx, string(out.JSON))
}

func (s *Session) describe(kind model.Kind, id uuid.UUID, message string) string {
	for _, r := range s.rows(kind) {
		if r.id == id {
			return fmt.Sprintf("%s %s: %s", kindLabels[kind], strings.TrimSpace(r.label), message)
		}
	}
	return fmt.Sprintf("%s: %s", kindLabels[kind], message)
}

func (s *Session) payload() (export.Payload, bool) {
	text, ok := s.state.Output()
	if !ok {
		return export.Payload{}, false
	}
	p := export.NewPayload(text)
	p.Filename = s.filename
	return p, true
}

func (s *Session) copy(ctx context.Context) error {
	p, ok := s.payload()
	if !ok {
		return s.info(ctx, "Generate the JSON first.")
	}
	if _, err := s.targets.Export(ctx, export.TargetClipboard, p); err != nil {
		return s.errorf(ctx, "Could not copy to the clipboard: %v", err)
	}
	return s.info(ctx, "Copied to the clipboard.")
}

func (s *Session) saveAs(ctx context.Context) error {
	p, ok := s.payload()
	if !ok {
		return s.info(ctx, "Generate the JSON first.")
	}
	res, err := s.targets.Export(ctx, export.TargetSaveAs, p)
	if err != nil {
		return err
	}
	switch res.Outcome {
	case export.OutcomeSaved:
		return s.info(ctx, "Saved "+res.Path)
	case export.OutcomeDownloaded:
		return s.info(ctx, "Downloaded "+res.Path)
	default:
		// cancelled or failed dialogs stay silent
		return nil
	}
}

func (s *Session) download(ctx context.Context) error {
	p, ok := s.payload()
	if !ok {
		return s.info(ctx, "Generate the JSON first.")
	}
	res, err := s.targets.Export(ctx, export.TargetDownload, p)
	if err != nil {
		return s.errorf(ctx, "Download failed: %v", err)
	}
	return s.info(ctx, "Downloaded "+res.Path)
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) errorf(ctx context.Context, format string, args ...any) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}
