package wizardmcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_features",
			mcp.WithDescription("List the wizards that can be started"),
			mcp.WithString("locale", mcp.Description("BCP 47 locale for titles (default: server locale)")),
		),
		s.handleListFeatures,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("start_wizard",
			mcp.WithDescription("Start a wizard and return its first step"),
			mcp.WithString("feature", mcp.Required(), mcp.Description("Feature ID from list_features")),
			mcp.WithString("locale", mcp.Description("BCP 47 locale for labels and errors")),
		),
		s.handleStartWizard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_field",
			mcp.WithDescription("Set one field of the current wizard. Editing a field clears its error"),
			mcp.WithString("session", mcp.Required(), mcp.Description("Session ID from start_wizard")),
			mcp.WithString("field", mcp.Required(), mcp.Description("Field name")),
			mcp.WithString("value", mcp.Description("Text value; numbers and booleans as text, selections comma separated")),
			mcp.WithArray("values", mcp.Description("Selected options for multi-select fields"),
				mcp.Items(map[string]any{"type": "string"})),
		),
		s.handleSetField,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("next_step",
			mcp.WithDescription("Validate the current step and advance when it is valid"),
			mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		),
		s.handleNextStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("previous_step",
			mcp.WithDescription("Go back one step without validating"),
			mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		),
		s.handlePreviousStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("submit_wizard",
			mcp.WithDescription("Validate the final step and submit the collected values. The session is closed on success"),
			mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		),
		s.handleSubmitWizard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard_state",
			mcp.WithDescription("Show the current step, its fields and any errors"),
			mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		),
		s.handleWizardState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("cancel_wizard",
			mcp.WithDescription("Discard a wizard session"),
			mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		),
		s.handleCancelWizard,
	)
}

func (s *Server) handleListFeatures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loc := s.bundle.Localizer(request.GetString("locale", s.locale))
	var out []featureView
	for _, def := range features.All() {
		out = append(out, describeFeature(def, loc))
	}
	return jsonResult(out)
}

func (s *Server) handleStartWizard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("feature")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	def, ok := features.Lookup(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown feature %q", id)), nil
	}

	sess, err := s.openSession(def, request.GetString("locale", ""))
	if err != nil {
		return nil, fmt.Errorf("start wizard: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return jsonResult(describe(sess))
}

func (s *Server) handleSetField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	name, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	f, ok := sess.wizard.Definition().Field(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown field %q", name)), nil
	}

	args := request.GetArguments()
	raw, ok := args["values"]
	if !ok {
		raw, ok = args["value"]
	}
	if !ok {
		return mcp.NewToolResultError("one of 'value' or 'values' is required"), nil
	}

	v, err := form.FromInterface(f.Kind, raw)
	if err == nil {
		err = sess.wizard.Set(name, v)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(describe(sess))
}

type moveResult struct {
	Moved bool      `json:"moved"`
	State stateView `json:"state"`
}

func (s *Server) handleNextStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.move(request, (*form.Wizard).Next, true)
}

func (s *Server) handlePreviousStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.move(request, (*form.Wizard).Back, false)
}

func (s *Server) move(request mcp.CallToolRequest, step func(*form.Wizard) bool, forward bool) (*mcp.CallToolResult, error) {
	sess, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	moved := step(sess.wizard)
	if forward && !moved && !sess.wizard.IsLast() {
		s.metrics.stepBlocked(sess.wizard.Definition().ID, sess.wizard.Step())
	}
	return jsonResult(moveResult{Moved: moved, State: describe(sess)})
}

type submitResult struct {
	Submitted bool              `json:"submitted"`
	Payload   *form.Payload     `json:"payload,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func (s *Server) handleSubmitWizard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	feature := sess.wizard.Definition().ID
	payload, err := sess.wizard.Submit()
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		s.metrics.stepBlocked(feature, verr.Step)
		return jsonResult(submitResult{Errors: verr.Errors})
	case errors.Is(err, form.ErrNotFinalStep):
		return mcp.NewToolResultError(fmt.Sprintf("submit is only available on step %d; call next_step first", sess.wizard.Steps())), nil
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.metrics.submitted.WithLabelValues(feature).Inc()
	s.closeSession(sess.id)
	return jsonResult(submitResult{Submitted: true, Payload: &payload})
}

func (s *Server) handleWizardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return jsonResult(describe(sess))
}

func (s *Server) handleCancelWizard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	sess.mu.Lock()
	feature := sess.wizard.Definition().ID
	sess.mu.Unlock()

	s.closeSession(sess.id)
	s.metrics.cancelled.WithLabelValues(feature).Inc()
	return mcp.NewToolResultText(fmt.Sprintf("Session %s discarded", sess.id)), nil
}

func (s *Server) lookup(request mcp.CallToolRequest) (*session, *mcp.CallToolResult) {
	id, err := request.RequireString("session")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	sess, ok := s.session(id)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("unknown session %q", id))
	}
	return sess, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
