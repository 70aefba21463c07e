// Package advisor answers CEA questions: it screens the problem text, records alerts for
// flagged input, advances the sector's learning trajectory and attaches the canned advice.
package advisor

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/cea/internal/alerts"
	"github.com/sawpanic/cea/internal/domain/advice"
	"github.com/sawpanic/cea/internal/domain/screening"
	"github.com/sawpanic/cea/internal/domain/sectors"
	"github.com/sawpanic/cea/internal/domain/validation"
)

// MsgProblemRequired is returned when the problem text is blank.
const MsgProblemRequired = "Problem text is required."

// Query is one advice request as submitted.
type Query struct {
	UserType string
	Sector   string
	Problem  string
}

// Answer is either a refusal (Suspicious) or advice with the sector's updated trajectory.
type Answer struct {
	Suspicious bool
	Message    string
	Alert      alerts.Alert

	UserType string
	Sector   string
	Problem  string
	Header   string
	Advice   string
	Snapshot sectors.Snapshot
}

// Service owns no state of its own; it composes the injected stores.
type Service struct {
	sectors   *sectors.Dataset
	alerts    *alerts.Log
	forwarder alerts.Forwarder
}

// New wires a Service. A nil forwarder disables alert forwarding.
func New(ds *sectors.Dataset, alertLog *alerts.Log, fwd alerts.Forwarder) *Service {
	if fwd == nil {
		fwd = alerts.NopForwarder{}
	}
	return &Service{sectors: ds, alerts: alertLog, forwarder: fwd}
}

// Ask processes q. User type and sector are lower-cased, the problem is trimmed.
//
// Order matters: a blank problem fails first, then suspicious text is refused (and
// audited) before the sector is checked, so flagged input with an unknown sector still
// produces an alert.
func (s *Service) Ask(ctx context.Context, q Query) (Answer, error) {
	userType := strings.ToLower(q.UserType)
	sector := strings.ToLower(q.Sector)
	problem := strings.TrimSpace(q.Problem)

	if problem == "" {
		return Answer{}, validation.New(MsgProblemRequired)
	}

	if term, flagged := screening.Match(problem); flagged {
		alert := s.alerts.Record(userType, sector, problem)
		log.Warn().
			Str("user_type", userType).
			Str("sector", sector).
			Str("term", term).
			Msg("Suspicious problem refused")

		if err := s.forwarder.Forward(ctx, alert); err != nil {
			log.Error().Err(err).Msg("Alert forwarding failed")
		}

		return Answer{
			Suspicious: true,
			Message:    screening.RefusalMessage,
			Alert:      alert,
		}, nil
	}

	if err := s.sectors.Validate(sector); err != nil {
		return Answer{}, err
	}

	step := s.sectors.ApplyLearningStep(sector)
	if step.Outcome == sectors.OutcomeSectorNotFound {
		return Answer{}, &sectors.UnknownSectorError{Sector: sector}
	}

	log.Debug().
		Str("sector", sector).
		Int("usage", step.Snapshot.Usage).
		Msg("Learning step applied")

	return Answer{
		UserType: userType,
		Sector:   sector,
		Problem:  problem,
		Header:   advice.Header(userType, sector),
		Advice:   advice.For(userType, sector),
		Snapshot: step.Snapshot,
	}, nil
}

// Sectors exposes the dataset for read-only views.
func (s *Service) Sectors() *sectors.Dataset { return s.sectors }

// Alerts exposes the alert log.
func (s *Service) Alerts() *alerts.Log { return s.alerts }
