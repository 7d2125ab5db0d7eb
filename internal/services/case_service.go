package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"findthem_backend/internal/apperrors"
	"findthem_backend/internal/auth"
	"findthem_backend/internal/models"
	"findthem_backend/internal/repositories"
	"findthem_backend/internal/services/dto"
)

// Policy holds the authorization knobs of the case lifecycle that are
// deliberate product decisions rather than hard rules.
type Policy struct {
	AnonymousSubmit             bool
	AnonymousComment            bool
	StatusEditRequiresModerator bool
}

// maxAppendRetries bounds retries of the comment append when the store
// reports a transient conflict; after that the failure is surfaced.
const maxAppendRetries = 3

type CaseService interface {
	Submit(ctx context.Context, claims *auth.Claims, req *dto.SubmitCaseRequest) (*dto.CaseResponse, error)
	ListPublished(ctx context.Context, search string) ([]*dto.CaseResponse, error)
	ListPending(ctx context.Context, claims *auth.Claims) ([]*dto.CaseResponse, error)
	Get(ctx context.Context, id string) (*dto.CaseResponse, error)
	UpdateStatus(ctx context.Context, claims *auth.Claims, id, status string) (*dto.CaseResponse, error)
	Approve(ctx context.Context, claims *auth.Claims, id string) (*dto.CaseResponse, error)
	AddComment(ctx context.Context, claims *auth.Claims, id, text string) (*dto.CaseResponse, error)
}

type CaseServiceImpl struct {
	caseRepo repositories.CaseRepository
	policy   Policy
}

func NewCaseService(caseRepo repositories.CaseRepository, policy Policy) CaseService {
	return &CaseServiceImpl{
		caseRepo: caseRepo,
		policy:   policy,
	}
}

// Submit validates a report and creates it as a pending case. Submission
// always lands in the moderation queue; no caller can bypass that.
func (s *CaseServiceImpl) Submit(ctx context.Context, claims *auth.Claims, req *dto.SubmitCaseRequest) (*dto.CaseResponse, error) {
	if claims == nil && !s.policy.AnonymousSubmit {
		return nil, apperrors.ErrUnauthorized
	}
	if claims != nil {
		if err := auth.Authorize(claims, auth.CapabilitySubmitCase); err != nil {
			return nil, authorizationError(err)
		}
	}

	latitude, err := parseCoordinate(req.Latitude)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"latitude": "must be a finite number"})
	}
	longitude, err := parseCoordinate(req.Longitude)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"longitude": "must be a finite number"})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"date": "must be a valid date"})
	}

	c := &models.Case{
		Name:        strings.TrimSpace(req.Name),
		Status:      models.CaseStatus(req.Status),
		Date:        date,
		LastSeen:    strings.TrimSpace(req.LastSeen),
		Latitude:    latitude,
		Longitude:   longitude,
		Description: req.Description,
		PhotoURL:    req.PhotoRef,
		Pending:     true,
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, apperrors.StoreError(err)
	}

	return dto.NewCaseResponse(c), nil
}

func (s *CaseServiceImpl) ListPublished(ctx context.Context, search string) ([]*dto.CaseResponse, error) {
	cases, err := s.caseRepo.FindPublished(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return dto.NewCaseListResponse(cases), nil
}

// ListPending is the moderation queue.
func (s *CaseServiceImpl) ListPending(ctx context.Context, claims *auth.Claims) ([]*dto.CaseResponse, error) {
	if err := auth.Authorize(claims, auth.CapabilityModerateCase); err != nil {
		return nil, authorizationError(err)
	}

	cases, err := s.caseRepo.FindPending(ctx)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return dto.NewCaseListResponse(cases), nil
}

func (s *CaseServiceImpl) Get(ctx context.Context, id string) (*dto.CaseResponse, error) {
	c, err := s.caseRepo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, apperrors.StoreError(err)
	}
	return dto.NewCaseResponse(c), nil
}

// UpdateStatus edits the status field only. By default it is open to any
// caller: status is a public-interest signal, the pending flag is the
// moderation gate. The policy can tighten this to moderators.
func (s *CaseServiceImpl) UpdateStatus(ctx context.Context, claims *auth.Claims, id, status string) (*dto.CaseResponse, error) {
	if s.policy.StatusEditRequiresModerator {
		if err := auth.Authorize(claims, auth.CapabilityModerateCase); err != nil {
			return nil, authorizationError(err)
		}
	}

	if strings.TrimSpace(status) == "" {
		return nil, apperrors.ValidationError(map[string]string{"status": "This field is required"})
	}

	if err := s.caseRepo.UpdateStatus(ctx, id, models.CaseStatus(status)); err != nil {
		if apperrors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	return s.Get(ctx, id)
}

// Approve clears the pending flag, publishing the case. This is the only
// way a case becomes publicly visible.
func (s *CaseServiceImpl) Approve(ctx context.Context, claims *auth.Claims, id string) (*dto.CaseResponse, error) {
	if err := auth.Authorize(claims, auth.CapabilityModerateCase); err != nil {
		return nil, authorizationError(err)
	}

	if err := s.caseRepo.SetPending(ctx, id, false); err != nil {
		if apperrors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	return s.Get(ctx, id)
}

// AddComment appends a comment and returns the case with authors resolved.
// The append is a single row insert, retried a bounded number of times if
// the store reports a transient conflict.
func (s *CaseServiceImpl) AddComment(ctx context.Context, claims *auth.Claims, id, text string) (*dto.CaseResponse, error) {
	if claims == nil && !s.policy.AnonymousComment {
		return nil, apperrors.ErrUnauthorized
	}
	if claims != nil {
		if err := auth.Authorize(claims, auth.CapabilityComment); err != nil {
			return nil, authorizationError(err)
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ValidationError(map[string]string{"text": "Comment text is required"})
	}

	comment := &models.Comment{
		CaseID: id,
		Text:   text,
	}
	if claims != nil {
		userID := claims.UserID
		comment.UserID = &userID
	}

	var err error
	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		err = s.caseRepo.AppendComment(ctx, comment)
		if err == nil {
			break
		}
		if apperrors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrCaseNotFound
		}
	}
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	return s.Get(ctx, id)
}

// parseCoordinate parses a decimal-degree value and rejects anything that
// is not a finite number.
func parseCoordinate(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
