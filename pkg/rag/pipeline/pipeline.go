package pipeline

import (
	"context"
	"fmt"
	"log"

	"ai-support-chat-be/internal/constant"
	"ai-support-chat-be/pkg/rag/category"
	"ai-support-chat-be/pkg/rag/generate"
	"ai-support-chat-be/pkg/rag/handoff"
	"ai-support-chat-be/pkg/rag/refine"
	"ai-support-chat-be/pkg/rag/retrieve"
	"ai-support-chat-be/pkg/rag/state"
	"ai-support-chat-be/pkg/rag/validate"
	"ai-support-chat-be/pkg/store"
)

// Stage names of the request-response state machine.
type Stage string

const (
	StageCategorize      Stage = "categorize"
	StageRetrieve        Stage = "retrieve"
	StageGenerate        Stage = "generate"
	StageValidate        Stage = "validate"
	StageRefine          Stage = "refine"
	StageHumanAssistance Stage = "handleHumanAssistance"
	StageEnd             Stage = "end"
)

// transition describes where a stage hands off to. Either Next is fixed or
// Condition picks the successor from the current state.
type transition struct {
	Next      Stage
	Condition func(*state.PipelineState) Stage
}

// Input is what the caller supplies to one pipeline invocation.
type Input struct {
	Question  string
	History   []store.ChatMessage
	SessionID string
}

// Pipeline wires the stages into a fixed directed graph with exactly one
// conditional branch (validate -> refine | handleHumanAssistance).
type Pipeline struct {
	retriever *retrieve.Retriever
	generator *generate.Generator
	validator *validate.Validator
	refiner   *refine.Refiner
	logger    *log.Logger

	transitions map[Stage]transition
	handlers    map[Stage]func(context.Context, *state.PipelineState) error
}

func New(
	retriever *retrieve.Retriever,
	generator *generate.Generator,
	validator *validate.Validator,
	refiner *refine.Refiner,
	logger *log.Logger,
) *Pipeline {
	p := &Pipeline{
		retriever: retriever,
		generator: generator,
		validator: validator,
		refiner:   refiner,
		logger:    logger,
	}

	p.transitions = map[Stage]transition{
		StageCategorize: {Next: StageRetrieve},
		StageRetrieve:   {Next: StageGenerate},
		StageGenerate:   {Next: StageValidate},
		StageValidate: {Condition: func(s *state.PipelineState) Stage {
			if s.NeedsRefinement {
				return StageRefine
			}
			return StageHumanAssistance
		}},
		StageRefine:          {Next: StageHumanAssistance},
		StageHumanAssistance: {Next: StageEnd},
	}

	p.handlers = map[Stage]func(context.Context, *state.PipelineState) error{
		StageCategorize:      p.categorize,
		StageRetrieve:        p.retrieve,
		StageGenerate:        p.generate,
		StageValidate:        p.validate,
		StageRefine:          p.refine,
		StageHumanAssistance: p.handleHumanAssistance,
	}

	return p
}

// Invoke runs one full request-response cycle and returns the terminal state.
// Stages execute strictly in sequence; the pipeline has no internal
// cancellation points beyond the ctx handed to LLM and vector-store calls.
func (p *Pipeline) Invoke(ctx context.Context, input Input) (*state.PipelineState, error) {
	s := &state.PipelineState{
		Question:  input.Question,
		History:   input.History,
		SessionID: input.SessionID,
	}

	current := StageCategorize
	for current != StageEnd {
		handler, ok := p.handlers[current]
		if !ok {
			return nil, fmt.Errorf("no handler for pipeline stage %q", current)
		}

		if err := handler(ctx, s); err != nil {
			return nil, fmt.Errorf("stage %s: %w", current, err)
		}

		t := p.transitions[current]
		if t.Condition != nil {
			current = t.Condition(s)
		} else {
			current = t.Next
		}
	}

	return s, nil
}

func (p *Pipeline) categorize(_ context.Context, s *state.PipelineState) error {
	s.Category = category.Identify(s.Question)
	p.logger.Printf("[PIPELINE] Question categorized as %s", s.Category)
	return nil
}

func (p *Pipeline) retrieve(ctx context.Context, s *state.PipelineState) error {
	result := p.retriever.Retrieve(ctx, s.Question, s.Category)
	s.Context = result.Context
	s.ContextRelevance = result.ContextRelevance
	s.ClarificationNeeded = result.ClarificationNeeded
	p.logger.Printf("[PIPELINE] Retrieved %d chunks (relevance %.3f)", len(s.Context), s.ContextRelevance)
	return nil
}

func (p *Pipeline) generate(ctx context.Context, s *state.PipelineState) error {
	// Weak retrieval yields a clarifying question instead of letting the
	// model fabricate an answer from nothing.
	if s.ClarificationNeeded {
		s.Answer = constant.ClarificationMessageV1
		p.logger.Printf("[PIPELINE] Clarification path engaged")
		return nil
	}

	answer, err := p.generator.Generate(ctx, s.Question, s.Category, s.Context, s.History)
	if err != nil {
		return err
	}
	s.Answer = answer
	return nil
}

func (p *Pipeline) validate(_ context.Context, s *state.PipelineState) error {
	decision := p.validator.Validate(s.Answer, s.Question, s.Context)
	s.NeedsRefinement = decision.NeedsRefinement
	s.NeedsHumanAssistance = decision.NeedsHumanAssistance
	p.logger.Printf("[PIPELINE] Validation: refinement=%v human=%v", decision.NeedsRefinement, decision.NeedsHumanAssistance)
	return nil
}

func (p *Pipeline) refine(ctx context.Context, s *state.PipelineState) error {
	if !s.NeedsRefinement {
		return nil
	}

	// A clarifying question is already the best response weak retrieval can
	// give; rewriting it against empty context would only degrade it.
	if s.ClarificationNeeded {
		return nil
	}

	refined, err := p.refiner.Refine(ctx, s.Question, s.Context, s.Answer)
	if err != nil {
		return err
	}
	s.FinalAnswer = refined
	return nil
}

func (p *Pipeline) handleHumanAssistance(_ context.Context, s *state.PipelineState) error {
	if s.NeedsHumanAssistance {
		// Handoff overrides any refined answer
		s.FinalAnswer = handoff.Message(s.Question)
		return nil
	}

	if s.FinalAnswer == "" {
		s.FinalAnswer = s.Answer
	}
	return nil
}
