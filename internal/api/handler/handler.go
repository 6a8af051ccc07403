package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"confreg/internal/dto"
	"confreg/internal/model"
	"confreg/internal/repo"
	"confreg/internal/service"
)

type Handler struct {
	svc service.Service
	log *zerolog.Logger
}

func New(svc service.Service, log *zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func parseID(ctx *ginext.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parentNotFound(ctx *ginext.Context, kind model.ParentKind) {
	if kind == model.KindActivity {
		dto.NotFoundError(ctx, dto.ActivityNotFound, "Activity not found or not active")
		return
	}
	dto.NotFoundError(ctx, dto.SessionNotFound, "Session not found or not published")
}

// writeError maps domain errors onto responses. Unknown errors are logged and
// reported without detail.
func (h *Handler) writeError(ctx *ginext.Context, kind model.ParentKind, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		dto.BadResponseError(ctx, dto.FieldIncorrect, verr.Msg)
	case errors.Is(err, repo.ErrParentNotFound):
		parentNotFound(ctx, kind)
	case errors.Is(err, repo.ErrRegistrationNotFound):
		dto.RegistrationNotFoundError(ctx)
	case errors.Is(err, repo.ErrEnrollmentNotFound):
		dto.NotFoundError(ctx, dto.EnrollmentNotFound, "Registration not found")
	case errors.Is(err, repo.ErrCapacityExceeded):
		dto.BadResponseError(ctx, dto.CapacityExceeded, capitalizedKind(kind)+" is full")
	case errors.Is(err, repo.ErrAlreadyEnrolled):
		dto.BadResponseError(ctx, dto.EnrollmentDuplicate, "Already registered for this "+string(kind))
	case errors.Is(err, repo.ErrEmailTaken):
		dto.RegistrationDuplicateError(ctx)
	default:
		h.log.Error().Err(err).Str("op", op).Msg("request failed")
		dto.InternalServerError(ctx)
	}
}

func capitalizedKind(kind model.ParentKind) string {
	if kind == model.KindActivity {
		return "Activity"
	}
	return "Session"
}

func (h *Handler) enroll(kind model.ParentKind, param string) func(*ginext.Context) {
	return func(ctx *ginext.Context) {
		parentID, ok := parseID(ctx, param)
		if !ok {
			parentNotFound(ctx, kind)
			return
		}

		var req dto.EnrollRequest
		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
			return
		}

		enrollment, err := h.svc.Enroll(ctx.Request.Context(), kind, parentID, int64(req.RegistrationID))
		if err != nil {
			h.writeError(ctx, kind, "enroll", err)
			return
		}
		dto.SuccessCreatedResponse(ctx, enrollment)
	}
}

func (h *Handler) unenroll(kind model.ParentKind, param string) func(*ginext.Context) {
	return func(ctx *ginext.Context) {
		parentID, ok := parseID(ctx, param)
		if !ok {
			dto.NotFoundError(ctx, dto.EnrollmentNotFound, "Registration not found")
			return
		}
		registrationID, ok := parseID(ctx, "registrationId")
		if !ok {
			dto.NotFoundError(ctx, dto.EnrollmentNotFound, "Registration not found")
			return
		}

		if err := h.svc.Unenroll(ctx.Request.Context(), kind, parentID, registrationID); err != nil {
			h.writeError(ctx, kind, "unenroll", err)
			return
		}
		dto.SuccessResponse(ctx, dto.MessageResponse{
			Message: fmt.Sprintf("Unregistered from %s successfully", kind),
		})
	}
}

func (h *Handler) EnrollSession(ctx *ginext.Context) {
	h.enroll(model.KindSession, "sessionId")(ctx)
}

func (h *Handler) UnenrollSession(ctx *ginext.Context) {
	h.unenroll(model.KindSession, "sessionId")(ctx)
}

func (h *Handler) EnrollActivity(ctx *ginext.Context) {
	h.enroll(model.KindActivity, "activityId")(ctx)
}

func (h *Handler) UnenrollActivity(ctx *ginext.Context) {
	h.unenroll(model.KindActivity, "activityId")(ctx)
}

func (h *Handler) ListForRegistrant(ctx *ginext.Context) {
	registrationID, ok := parseID(ctx, "registrationId")
	if !ok {
		dto.FieldIncorrectError(ctx, "registrationId")
		return
	}

	schedule, err := h.svc.ListForRegistrant(ctx.Request.Context(), registrationID)
	if err != nil {
		h.writeError(ctx, "", "list_for_registrant", err)
		return
	}
	dto.SuccessResponse(ctx, schedule)
}
