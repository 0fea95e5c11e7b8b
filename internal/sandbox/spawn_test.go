package sandbox

import (
	"math/rand"
	"testing"
)

func TestSpawnRateDecaysToFloor(t *testing.T) {
	p := NewSpawnPolicy(DefaultSpawnConfig())
	if p.Rate() != 0.05 {
		t.Fatalf("expected initial rate 0.05, got %f", p.Rate())
	}
	for i := 0; i < 299; i++ {
		p.Spawned()
	}
	if p.Rate() <= 0.02 {
		t.Errorf("expected rate above floor after 299 spawns, got %f", p.Rate())
	}
	p.Spawned()
	if p.Rate() != 0.02 {
		t.Errorf("expected rate 0.02 after 300 spawns, got %.17f", p.Rate())
	}
	for i := 0; i < 50; i++ {
		p.Spawned()
	}
	if p.Rate() != 0.02 {
		t.Errorf("expected rate to stay at floor, got %f", p.Rate())
	}

	p.Reset()
	if p.Rate() != 0.05 {
		t.Errorf("expected reset rate 0.05, got %f", p.Rate())
	}
}

func TestSpawnRadiusTiers(t *testing.T) {
	p := NewSpawnPolicy(DefaultSpawnConfig())
	rng := rand.New(rand.NewSource(7))

	const n = 20000
	counts := [3]int{}
	for i := 0; i < n; i++ {
		r := p.Radius(rng)
		switch {
		case r >= 10 && r <= 20:
			counts[0]++
		case r >= 21 && r <= 30:
			counts[1]++
		case r >= 31 && r <= 40:
			counts[2]++
		default:
			t.Fatalf("radius %d outside every tier", r)
		}
	}

	want := [3]float64{0.7, 0.2, 0.1}
	for i, c := range counts {
		got := float64(c) / n
		if got < want[i]-0.02 || got > want[i]+0.02 {
			t.Errorf("tier %d: expected share %.2f, got %.3f", i, want[i], got)
		}
	}
}

func TestSpawnRadiusWithoutTiers(t *testing.T) {
	p := NewSpawnPolicy(SpawnConfig{})
	if r := p.Radius(rand.New(rand.NewSource(1))); r != 0 {
		t.Errorf("expected 0 without tiers, got %d", r)
	}
}

func TestSpawnRoll(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	never := NewSpawnPolicy(SpawnConfig{Rate: 0})
	always := NewSpawnPolicy(SpawnConfig{Rate: 1})
	for i := 0; i < 100; i++ {
		if never.Roll(rng) {
			t.Fatal("rate 0 must never spawn")
		}
		if !always.Roll(rng) {
			t.Fatal("rate 1 must always spawn")
		}
	}
}
