// Package mcp provides the Model Context Protocol server integration for medtrack.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/glyph"
	"tableflip.dev/medtrack/pkg/timeutil"
)

// Service runs app operations on behalf of MCP clients. Every call reloads
// from the store first so writes from other sessions are visible.
type Service struct {
	mu  sync.Mutex
	app *app.App
}

// ErrLogNotFound is returned when a log id is not part of today.
var ErrLogNotFound = errors.New("log not found today")

// MedicationOptions carries add and edit arguments. Nil fields are left as
// they are when editing and take the defaults when adding.
type MedicationOptions struct {
	Ref    string
	Name   *string
	Dosage *string
	Icon   *string
	Color  *string
}

// MedicationDTO is a transport-friendly projection of a medication.
type MedicationDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dosage     string `json:"dosage,omitempty"`
	Icon       string `json:"icon"`
	IconSymbol string `json:"iconSymbol"`
	Color      string `json:"color"`
	ColorHex   string `json:"colorHex"`
}

// LogDTO is a transport-friendly projection of a log entry.
type LogDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Timestamp string `json:"timestamp"`
	Time      string `json:"time"`
}

// NewService wraps a, which must not be used elsewhere concurrently.
func NewService(a *app.App) *Service {
	return &Service{app: a}
}

func (s *Service) begin() (*app.App, error) {
	if s.app == nil {
		return nil, errors.New("app is not configured")
	}
	if err := s.app.Reload(); err != nil {
		return nil, err
	}
	if err := s.app.Dispatch(app.Navigate{To: app.ViewHome}); err != nil {
		return nil, err
	}
	return s.app, nil
}

// ListMedications returns the catalog in catalog order.
func (s *Service) ListMedications(ctx context.Context) ([]MedicationDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	return toMedicationDTOs(a.State().Medications), nil
}

// AddMedication adds a medication. The name is required.
func (s *Service) AddMedication(ctx context.Context, opts MedicationOptions) (*MedicationDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	if opts.Name == nil || strings.TrimSpace(*opts.Name) == "" {
		return nil, errors.New("name is required")
	}
	before := len(a.State().Medications)
	if err := s.submit(app.OpenAddMed{}, opts); err != nil {
		return nil, err
	}
	meds := a.State().Medications
	if len(meds) == before {
		return nil, errors.New("medication was not added")
	}
	dto := toMedicationDTO(meds[len(meds)-1])
	return &dto, nil
}

// EditMedication updates the fields set in opts on the medication opts.Ref.
func (s *Service) EditMedication(ctx context.Context, opts MedicationOptions) (*MedicationDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	m, err := a.Resolve(opts.Ref)
	if err != nil {
		return nil, err
	}
	if opts.Name != nil && strings.TrimSpace(*opts.Name) == "" {
		return nil, errors.New("name can not be blank")
	}
	if err := s.submit(app.OpenEditMed{ID: m.ID}, opts); err != nil {
		return nil, err
	}
	updated, _ := a.Catalog.Get(m.ID)
	dto := toMedicationDTO(updated)
	return &dto, nil
}

func (s *Service) submit(open app.Action, opts MedicationOptions) error {
	acts := []app.Action{open}
	if opts.Name != nil {
		acts = append(acts, app.SetName{Value: *opts.Name})
	}
	if opts.Dosage != nil {
		acts = append(acts, app.SetDosage{Value: *opts.Dosage})
	}
	if opts.Icon != nil {
		acts = append(acts, app.SetIcon{Value: glyph.ParseIcon(*opts.Icon)})
	}
	if opts.Color != nil {
		acts = append(acts, app.SetColor{Value: glyph.ParseColor(*opts.Color)})
	}
	acts = append(acts, app.SubmitMed{})
	for _, act := range acts {
		if err := s.app.Dispatch(act); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMedication removes a medication from the catalog. Logs keep their
// copy of its details.
func (s *Service) DeleteMedication(ctx context.Context, ref string) (*MedicationDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	m, err := a.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if err := a.Dispatch(app.RequestDeleteMed{ID: m.ID}); err != nil {
		return nil, err
	}
	if err := a.Dispatch(app.ConfirmDeleteMed{}); err != nil {
		return nil, err
	}
	dto := toMedicationDTO(m)
	return &dto, nil
}

// LogMedication records a dose of ref today at the HH:MM time at, or now.
func (s *Service) LogMedication(ctx context.Context, ref, at string) (*LogDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	l, err := a.QuickLog(ref, at)
	if err != nil {
		return nil, err
	}
	dto := toLogDTO(l)
	return &dto, nil
}

// ListToday returns today's doses, most recent first.
func (s *Service) ListToday(ctx context.Context) ([]LogDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	return toLogDTOs(a.State().Logs), nil
}

// ListHistory returns doses since the start of the day window ago.
func (s *Service) ListHistory(ctx context.Context, window time.Duration) ([]LogDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	logs, err := a.Journal.History(timeutil.WindowStart(a.Clock.Now(), window))
	if err != nil {
		return nil, err
	}
	return toLogDTOs(logs), nil
}

// DeleteLog removes one of today's doses.
func (s *Service) DeleteLog(ctx context.Context, id string) (*LogDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	l, ok := a.Journal.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLogNotFound, id)
	}
	if err := a.Dispatch(app.RequestDeleteLog{ID: id}); err != nil {
		return nil, err
	}
	if err := a.Dispatch(app.ConfirmDeleteLog{}); err != nil {
		return nil, err
	}
	dto := toLogDTO(l)
	return &dto, nil
}

func toMedicationDTOs(meds []entry.Medication) []MedicationDTO {
	out := make([]MedicationDTO, 0, len(meds))
	for _, m := range meds {
		out = append(out, toMedicationDTO(m))
	}
	return out
}

func toMedicationDTO(m entry.Medication) MedicationDTO {
	return MedicationDTO{
		ID:         m.ID,
		Name:       m.Name,
		Dosage:     m.Dosage,
		Icon:       string(m.Icon.OrDefault()),
		IconSymbol: m.Icon.String(),
		Color:      m.Color.String(),
		ColorHex:   m.Color.Hex(),
	}
}

func toLogDTOs(logs []entry.Log) []LogDTO {
	out := make([]LogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogDTO(l))
	}
	return out
}

func toLogDTO(l entry.Log) LogDTO {
	return LogDTO{
		ID:        l.ID,
		Name:      l.Name,
		Dosage:    l.Dosage,
		Icon:      string(l.Icon.OrDefault()),
		Color:     l.Color.String(),
		Timestamp: l.Timestamp.UTC().Format(entry.LayoutISO),
		Time:      timeutil.FormatTime(l.Timestamp.Time),
	}
}

// Medication looks up one medication by id or name.
func (s *Service) Medication(ctx context.Context, ref string) (*MedicationDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.begin()
	if err != nil {
		return nil, err
	}
	m, err := a.Resolve(ref)
	if err != nil {
		return nil, err
	}
	dto := toMedicationDTO(m)
	return &dto, nil
}
