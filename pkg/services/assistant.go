package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const (
	DescriptionEmpty    = "Freshly prepared for you."
	DescriptionFallback = "A classic favorite prepared with fresh ingredients."
	InsightsEmpty       = "Keep up the good work!"
	InsightsFallback    = "Unable to generate insights at this moment."
)

// Assistant writes menu copy and manager insights. It never returns an
// error: failures degrade to fixed text.
type Assistant struct {
	completer TextCompleter
	timeout   time.Duration
}

// NewAssistant wraps completer. A nil completer always yields the fallbacks.
func NewAssistant(completer TextCompleter) *Assistant {
	return &Assistant{completer: completer, timeout: 15 * time.Second}
}

// DescribeDish writes a short menu description for a dish.
func (a *Assistant) DescribeDish(ctx context.Context, name, ingredients string) string {
	prompt := fmt.Sprintf("Write a short, appetizing, mouth-watering menu description (max 25 words) for a dish named %q containing: %s. Do not use hashtags or markdown.", name, ingredients)
	return a.complete(ctx, prompt, DescriptionEmpty, DescriptionFallback)
}

// BusinessInsights asks for three bullet points about the given metrics.
func (a *Assistant) BusinessInsights(ctx context.Context, metrics any) string {
	data, err := json.Marshal(metrics)
	if err != nil {
		log.Printf("⚠️  Could not encode insight metrics: %v", err)
		return InsightsFallback
	}
	prompt := "You are an expert Restaurant Manager. Analyze these daily metrics and give 3 bullet points of advice/insight. Keep it brief.\nMetrics: " + string(data)
	return a.complete(ctx, prompt, InsightsEmpty, InsightsFallback)
}

func (a *Assistant) complete(ctx context.Context, prompt, empty, fallback string) string {
	if a == nil || a.completer == nil {
		return fallback
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("⚠️  Text completion failed: %v", err)
		return fallback
	}
	if text == "" {
		return empty
	}
	return text
}
