package usecase

import "log"

// CalcObserver receives the non-fatal diagnostics a calculation produces:
// skipped stages, baseline fallbacks, price-lookup fallbacks and dropped
// unknown slugs. Injecting it keeps the engine itself side-effect free.

type CalcObserver interface {
	StageSkipped(stageSlug, reason string)
	BaselineFallback(stageSlug, variantKey string)
	PriceFallback(stageSlug, itemRef, reason string)
	UnknownStageDropped(slug string)
}

// LogObserver writes diagnostics with the service-wide log prefix convention.
type LogObserver struct{}

func (LogObserver) StageSkipped(stageSlug, reason string) {
	log.Printf("[presupuesto][calc] stage skipped stage=%s reason=%s", stageSlug, reason)
}

func (LogObserver) BaselineFallback(stageSlug, variantKey string) {
	log.Printf("[presupuesto][calc] baseline fallback stage=%s variant=%s", stageSlug, variantKey)
}

func (LogObserver) PriceFallback(stageSlug, itemRef, reason string) {
	log.Printf("[presupuesto][calc] price fallback stage=%s item_ref=%s reason=%s", stageSlug, itemRef, reason)
}

func (LogObserver) UnknownStageDropped(slug string) {
	log.Printf("[presupuesto][calc] unknown stage dropped slug=%s", slug)
}

// NopObserver discards all diagnostics.
type NopObserver struct{}

func (NopObserver) StageSkipped(string, string)          {}
func (NopObserver) BaselineFallback(string, string)      {}
func (NopObserver) PriceFallback(string, string, string) {}
func (NopObserver) UnknownStageDropped(string)           {}
