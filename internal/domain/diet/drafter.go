package diet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-diet-planner/internal/platform/logger"
)

// Variant identifica la ruta usada para pedir el borrador.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantFallback  Variant = "fallback"
	VariantAlternate Variant = "alternate"
)

// GenerateRequest es lo que recibe un backend: un único prompt, sin conversación.
type GenerateRequest struct {
	Model       string
	Prompt      string
	Temperature float32
	JSON        bool
}

// Backend es la capacidad de borrador (Gemini, proveedor OpenAI-compatible, fakes).
type Backend interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Route = backend + modelo + variante (para logs/métricas).
type Route struct {
	Variant Variant
	Backend Backend
	Model   string
}

// DrafterConfig se inyecta al construir el Drafter (nada se lee de env acá).
type DrafterConfig struct {
	APIKey      string
	Primary     Route
	Fallback    Route // Backend/Model vacíos => se reutilizan los del primario
	Temperature float32
}

// Metrics es lo que el motor reporta; platform/metrics.Diet lo implementa.
type Metrics interface {
	DraftAttempt(variant, model, outcome string, took time.Duration)
	Assembly(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) DraftAttempt(string, string, string, time.Duration) {}
func (nopMetrics) Assembly(string)                                    {}

var errEmptyCompletion = errors.New("empty completion")

// Drafter pide el borrador al modelo primario y, ante cualquier falla,
// reintenta exactamente una vez contra el fallback.
type Drafter struct {
	cfg     DrafterConfig
	log     logger.Logger
	metrics Metrics
	now     func() time.Time
}

func NewDrafter(cfg DrafterConfig, log logger.Logger, m Metrics) *Drafter {
	if log == nil {
		log = logger.Nop()
	}
	if m == nil {
		m = nopMetrics{}
	}
	if cfg.Primary.Variant == "" {
		cfg.Primary.Variant = VariantPrimary
	}
	if cfg.Fallback.Variant == "" {
		cfg.Fallback.Variant = VariantFallback
	}
	if cfg.Fallback.Backend == nil {
		cfg.Fallback.Backend = cfg.Primary.Backend
	}
	if strings.TrimSpace(cfg.Fallback.Model) == "" {
		cfg.Fallback.Model = cfg.Primary.Model
	}
	return &Drafter{cfg: cfg, log: log, metrics: m, now: time.Now}
}

// Ready valida precondiciones sin tocar la red.
func (d *Drafter) Ready() error {
	if d == nil {
		return &ConfigurationError{Reason: "drafter not configured"}
	}
	if strings.TrimSpace(d.cfg.APIKey) == "" {
		return &ConfigurationError{Reason: "missing AI API credential"}
	}
	if d.cfg.Primary.Backend == nil {
		return &ConfigurationError{Reason: "no drafting backend available"}
	}
	if strings.TrimSpace(d.cfg.Primary.Model) == "" {
		return &ConfigurationError{Reason: "no primary model configured"}
	}
	return nil
}

// Draft devuelve el texto crudo del modelo.
func (d *Drafter) Draft(ctx context.Context, dc DraftContext) (string, error) {
	if err := d.Ready(); err != nil {
		return "", err
	}

	prompt, err := BuildPrompt(dc)
	if err != nil {
		return "", err
	}

	text, err := d.call(ctx, d.cfg.Primary, prompt)
	if err == nil {
		return text, nil
	}
	d.log.Warn("primary model failed, retrying with fallback", map[string]any{
		"animal_id":      dc.Animal.ID,
		"primary_model":  d.cfg.Primary.Model,
		"fallback_model": d.cfg.Fallback.Model,
		"error":          err,
	})

	text, ferr := d.call(ctx, d.cfg.Fallback, prompt)
	if ferr == nil {
		return text, nil
	}
	return "", &UpstreamServiceError{
		PrimaryModel:  d.cfg.Primary.Model,
		FallbackModel: d.cfg.Fallback.Model,
		Err:           ferr,
	}
}

func (d *Drafter) call(ctx context.Context, r Route, prompt string) (string, error) {
	start := d.now()
	text, err := r.Backend.Generate(ctx, GenerateRequest{
		Model:       r.Model,
		Prompt:      prompt,
		Temperature: d.cfg.Temperature,
		JSON:        true,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyCompletion
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	d.metrics.DraftAttempt(string(r.Variant), r.Model, outcome, d.now().Sub(start))

	if err != nil {
		return "", fmt.Errorf("%s model %s: %w", r.Variant, r.Model, err)
	}
	return text, nil
}
