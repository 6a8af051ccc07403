package handler

import (
	"fmt"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"confreg/internal/dto"
	"confreg/internal/model"
)

func (h *Handler) SubmitRegistration(ctx *ginext.Context) {
	var req dto.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	reg, err := h.svc.SubmitRegistration(ctx.Request.Context(), req.ToInput())
	if err != nil {
		h.writeError(ctx, "", "submit_registration", err)
		return
	}

	dto.SuccessCreatedResponse(ctx, dto.SubmitRegistrationResponse{
		Message:      "Registration submitted successfully and is under review",
		Registration: reg,
		Status:       model.StatusPending,
	})
}

func queryInt(ctx *ginext.Context, key string) int {
	v, err := strconv.Atoi(ctx.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func (h *Handler) ListRegistrations(ctx *ginext.Context) {
	page, err := h.svc.ListRegistrations(ctx.Request.Context(), model.ListFilter{
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
		Page:   queryInt(ctx, "page"),
		Limit:  queryInt(ctx, "limit"),
	})
	if err != nil {
		h.writeError(ctx, "", "list_registrations", err)
		return
	}
	dto.SuccessResponse(ctx, page)
}

func (h *Handler) TransitionStatus(ctx *ginext.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		dto.RegistrationNotFoundError(ctx)
		return
	}

	var req dto.StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	reg, err := h.svc.TransitionStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(ctx, "", "transition_status", err)
		return
	}
	dto.SuccessResponse(ctx, dto.RegistrationResponse{
		Message:      fmt.Sprintf("Registration status updated to %s", req.Status),
		Registration: reg,
	})
}

func (h *Handler) BulkTransitionStatus(ctx *ginext.Context) {
	var req dto.BulkStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	updated, err := h.svc.BulkTransitionStatus(ctx.Request.Context(), req.Int64IDs(), req.Status)
	if err != nil {
		h.writeError(ctx, "", "bulk_transition_status", err)
		return
	}
	dto.SuccessResponse(ctx, dto.BulkStatusResponse{
		Message:      fmt.Sprintf("%d registrations updated successfully", updated),
		UpdatedCount: updated,
	})
}

func (h *Handler) StatsOverview(ctx *ginext.Context) {
	stats, err := h.svc.StatsOverview(ctx.Request.Context())
	if err != nil {
		h.writeError(ctx, "", "stats_overview", err)
		return
	}
	dto.SuccessResponse(ctx, stats)
}

func (h *Handler) DeleteRegistration(ctx *ginext.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		dto.RegistrationNotFoundError(ctx)
		return
	}

	if err := h.svc.DeleteRegistration(ctx.Request.Context(), id); err != nil {
		h.writeError(ctx, "", "delete_registration", err)
		return
	}
	dto.SuccessResponse(ctx, dto.DeleteResponse{
		Message:   "Registration deleted successfully",
		DeletedID: id,
	})
}

func (h *Handler) UpdateRegistration(ctx *ginext.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		dto.RegistrationNotFoundError(ctx)
		return
	}

	var req dto.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	reg, err := h.svc.UpdateRegistration(ctx.Request.Context(), id, req.ToInput())
	if err != nil {
		h.writeError(ctx, "", "update_registration", err)
		return
	}
	dto.SuccessResponse(ctx, dto.RegistrationResponse{
		Message:      "Registration updated successfully",
		Registration: reg,
	})
}
