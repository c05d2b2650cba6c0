package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortwave(t *testing.T) {
	t.Run("reference value", func(t *testing.T) {
		// 800 · 0.85 · (1 − 0.65·0.25) = 569.5
		assert.InDelta(t, 569.5, Shortwave(800, 0.15, 0.5), 1e-9)
	})

	t.Run("clear sky passes albedo-reduced irradiance", func(t *testing.T) {
		assert.InDelta(t, 680, Shortwave(800, 0.15, 0), 1e-9)
	})

	t.Run("overcast attenuates by 65 percent", func(t *testing.T) {
		assert.InDelta(t, 800*0.85*0.35, Shortwave(800, 0.15, 1), 1e-9)
	})

	t.Run("non-increasing in cloud fraction", func(t *testing.T) {
		prev := Shortwave(800, 0.15, 0)
		for cl := 0.05; cl <= 1.0; cl += 0.05 {
			cur := Shortwave(800, 0.15, cl)
			assert.LessOrEqual(t, cur, prev, "cloud fraction %.2f", cl)
			prev = cur
		}
	})

	t.Run("zero irradiance at night", func(t *testing.T) {
		assert.Zero(t, Shortwave(0, 0.15, 0.5))
	})
}

func TestDownwellingLongwave(t *testing.T) {
	t.Run("reference value", func(t *testing.T) {
		// Tk = 283.15, ε = 0.937e-5·Tk² ≈ 0.75123,
		// q = ε·σ·Tk⁴ ≈ 273.81 W/m².
		assert.InDelta(t, 273.81, DownwellingLongwave(10, 0), 0.01)
	})

	t.Run("clouds increase emission", func(t *testing.T) {
		clear := DownwellingLongwave(10, 0)
		overcast := DownwellingLongwave(10, 1)
		assert.Greater(t, overcast, clear)
		assert.InDelta(t, 1.17, overcast/clear, 1e-9)
	})

	t.Run("warmer air emits more", func(t *testing.T) {
		assert.Greater(t, DownwellingLongwave(20, 0.5), DownwellingLongwave(-20, 0.5))
	})
}

func TestUpwellingLongwave(t *testing.T) {
	t.Run("near-freezing water", func(t *testing.T) {
		// 0.97·σ·275.15⁴ ≈ 315.25 W/m²
		assert.InDelta(t, 315.25, UpwellingLongwave(2), 0.01)
	})

	t.Run("strictly increasing in water temperature", func(t *testing.T) {
		prev := UpwellingLongwave(-5)
		for tw := -4.0; tw <= 30; tw++ {
			cur := UpwellingLongwave(tw)
			assert.Greater(t, cur, prev, "water temp %.0f", tw)
			prev = cur
		}
	})
}
