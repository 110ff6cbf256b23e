// Package handler provides the platform-neutral romanization operations.
package handler

import (
	"context"

	"github.com/pricofy/uroman-gateway/internal/domain"
	"github.com/pricofy/uroman-gateway/internal/logging"
)

// Transliterator is the engine binding used by the handler.
type Transliterator interface {
	Transliterate(ctx context.Context, text, langHint string) (string, error)
	TransliterateBatch(ctx context.Context, texts []string, langHint string) ([]string, error)
	Version(ctx context.Context) string
}

// Handler validates and routes plain romanization requests.
type Handler struct {
	engine Transliterator
	log    logging.Logger
}

// New creates a Handler.
func New(engine Transliterator, log logging.Logger) *Handler {
	return &Handler{engine: engine, log: log.WithName("handler")}
}

// HandleSingle romanizes one text.
func (h *Handler) HandleSingle(ctx context.Context, text string, langCode *string) (*domain.SingleResult, error) {
	if text == "" {
		return nil, domain.Errorf(domain.KindMissingInput, "No text provided")
	}

	romanized, err := h.engine.Transliterate(ctx, text, domain.StringValue(langCode))
	if err != nil {
		h.log.Error(err, "romanization failed", "lang_code", domain.StringValue(langCode))
		return nil, domain.Errorf(domain.KindEngineFailure, "%s", err.Error())
	}

	return &domain.SingleResult{
		Original:  text,
		Romanized: romanized,
		LangCode:  langCode,
	}, nil
}

// HandleBatch romanizes texts in order. Any item failure fails the batch.
func (h *Handler) HandleBatch(ctx context.Context, texts []string, langCode *string) (*domain.BatchResult, error) {
	if len(texts) == 0 {
		return nil, domain.Errorf(domain.KindMissingInput, "No texts provided")
	}

	romanized, err := h.engine.TransliterateBatch(ctx, texts, domain.StringValue(langCode))
	if err != nil {
		h.log.Error(err, "batch romanization failed", "count", len(texts))
		return nil, domain.Errorf(domain.KindEngineFailure, "%s", err.Error())
	}

	return &domain.BatchResult{
		Originals: texts,
		Romanized: romanized,
		LangCode:  langCode,
		Count:     len(texts),
	}, nil
}

// HandleRequest routes a request body: a "texts" key selects batch mode even
// when "text" is also present; otherwise the single-text path runs.
func (h *Handler) HandleRequest(ctx context.Context, req domain.Request) (domain.Result, error) {
	if req.HasTexts {
		res, err := h.HandleBatch(ctx, req.Texts, req.LangCode)
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	res, err := h.HandleSingle(ctx, req.Text, req.LangCode)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// HandleInfo describes the service. It never fails.
func (h *Handler) HandleInfo(ctx context.Context) domain.Info {
	return domain.Info{
		Service:     domain.ServiceName,
		Version:     h.engine.Version(ctx),
		Description: domain.ServiceDescription,
	}
}
