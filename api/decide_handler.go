package api

import (
	"errors"
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/aegis"
)

func (a *API) registerDecideRoutes(router forge.Router) error {
	g := router.Group("/v1/authz", forge.WithGroupTags("authorization"))

	if err := g.POST("/decide", a.decide,
		forge.WithSummary("Authorization decision"),
		forge.WithDescription("Evaluates the given policy requirements against the request context."),
		forge.WithOperationID("authzDecide"),
		forge.WithRequestSchema(DecideRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Decision outcome", DecideResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/decide/{operation}", a.decideOperation,
		forge.WithSummary("Authorization decision for a registered operation"),
		forge.WithDescription("Evaluates the requirements registered for the operation against the request context."),
		forge.WithOperationID("authzDecideOperation"),
		forge.WithRequestSchema(DecideOperationRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Decision outcome", DecideResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) decide(ctx forge.Context, req *DecideRequest) (*DecideResponse, error) {
	reqs, err := toRequirements(req.Requirements)
	if err != nil {
		return nil, forge.BadRequest(err.Error())
	}

	outcome := a.guard.Decide(ctx.Context(), reqs, toRequestContext(&req.Context))
	resp := toDecideResponse(outcome)
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) decideOperation(ctx forge.Context, req *DecideOperationRequest) (*DecideResponse, error) {
	if req.Operation == "" {
		return nil, forge.BadRequest("operation is required")
	}

	outcome, err := a.guard.DecideOperation(ctx.Context(), req.Operation, toRequestContext(&req.Context))
	if err != nil {
		if errors.Is(err, aegis.ErrOperationNotRegistered) {
			return nil, forge.NotFound(err.Error())
		}
		return nil, err
	}
	resp := toDecideResponse(outcome)
	return resp, ctx.JSON(http.StatusOK, resp)
}

func toRequirements(in []RequirementPayload) ([]aegis.Requirement, error) {
	reqs := make([]aegis.Requirement, 0, len(in))
	for _, r := range in {
		req := aegis.Requirement{
			Action:     aegis.Action(r.Action),
			Subject:    aegis.Subject(r.Subject),
			Conditions: r.Conditions,
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func toRequestContext(in *RequestContextPayload) *aegis.RequestContext {
	rctx := &aegis.RequestContext{
		Params: in.Params,
		Query:  in.Query,
		Body:   in.Body,
	}
	if in.User != nil {
		rctx.User = &aegis.Principal{
			ID:                in.User.ID,
			RoleName:          in.User.RoleName,
			StoredPermissions: in.User.StoredPermissions,
		}
	}
	return rctx
}

func toDecideResponse(o *aegis.Outcome) *DecideResponse {
	resp := &DecideResponse{
		Allowed:    o.Allowed,
		Decision:   string(o.Decision),
		Reason:     o.Reason,
		EvalTimeNs: o.EvalTimeNs,
	}
	for _, m := range o.MatchedBy {
		resp.MatchedBy = append(resp.MatchedBy, MatchInfo{
			Source: m.Source,
			Detail: m.Detail,
		})
	}
	return resp
}
