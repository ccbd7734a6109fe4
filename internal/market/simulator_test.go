package market

import (
	"math/rand"
	"testing"
	"time"

	"yqt-signal-desk/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestSimulator() *Simulator {
	return NewSimulator(fixedNow, rand.New(rand.NewSource(42)))
}

func TestSimulatorSeedsFullWindow(t *testing.T) {
	sim := newTestSimulator()

	for _, market := range domain.SupportedMarkets {
		hist := sim.History(market)
		if len(hist) != domain.HistoryWindowCapacity {
			t.Fatalf("expected %d points for %s, got %d", domain.HistoryWindowCapacity, market, len(hist))
		}
		if hist[0].Time != "11:40" {
			t.Fatalf("expected oldest point at 11:40, got %s", hist[0].Time)
		}
		if hist[len(hist)-1].Time != "12:00" {
			t.Fatalf("expected newest point at 12:00, got %s", hist[len(hist)-1].Time)
		}
	}
}

func TestSimulatorWindowBoundAfterManyTicks(t *testing.T) {
	sim := newTestSimulator()

	for i := 0; i < 100; i++ {
		sim.Tick()
		for _, market := range domain.SupportedMarkets {
			if got := len(sim.History(market)); got != domain.HistoryWindowCapacity {
				t.Fatalf("tick %d: window for %s has %d points", i, market, got)
			}
		}
	}
}

func TestSimulatorTickUpdatesCurrentPrice(t *testing.T) {
	sim := newTestSimulator()

	before, err := sim.CurrentPrice(domain.MarketCrypto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sim.Tick()
	after, err := sim.CurrentPrice(domain.MarketCrypto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if before == after {
		t.Fatal("expected price to move after tick")
	}
	diff := after - before
	if diff > cryptoTickJitter || diff < -cryptoTickJitter {
		t.Fatalf("crypto step %f exceeds jitter bound %f", diff, cryptoTickJitter)
	}

	hist := sim.History(domain.MarketCrypto)
	if hist[len(hist)-1].Price != after {
		t.Fatal("expected newest history point to match current price")
	}
}

func TestSimulatorForexJitterScale(t *testing.T) {
	sim := newTestSimulator()

	before, _ := sim.CurrentPrice(domain.MarketForex)
	sim.Tick()
	after, _ := sim.CurrentPrice(domain.MarketForex)

	diff := after - before
	if diff > forexTickJitter || diff < -forexTickJitter {
		t.Fatalf("forex step %f exceeds jitter bound %f", diff, forexTickJitter)
	}
}

func TestRecentHistoryClampsToWindow(t *testing.T) {
	sim := newTestSimulator()

	recent := sim.RecentHistory(domain.MarketCrypto, domain.OracleLookback)
	if len(recent) != domain.OracleLookback {
		t.Fatalf("expected %d points, got %d", domain.OracleLookback, len(recent))
	}

	all := sim.RecentHistory(domain.MarketCrypto, 1000)
	if len(all) != domain.HistoryWindowCapacity {
		t.Fatalf("expected clamp to %d, got %d", domain.HistoryWindowCapacity, len(all))
	}

	full := sim.History(domain.MarketCrypto)
	if recent[len(recent)-1] != full[len(full)-1] {
		t.Fatal("expected recent history to end at the newest point")
	}
}

func TestCurrentPriceUnknownMarket(t *testing.T) {
	sim := newTestSimulator()
	if _, err := sim.CurrentPrice(domain.MarketType("STOCKS")); err == nil {
		t.Fatal("expected error for unknown market")
	}
}

func TestAssetIdentifiers(t *testing.T) {
	sim := newTestSimulator()

	if got := sim.Asset(domain.MarketCrypto); got != domain.CryptoAssetID {
		t.Fatalf("expected %s, got %s", domain.CryptoAssetID, got)
	}
	if got := sim.Asset(domain.MarketForex); got != domain.DefaultForexSymbol {
		t.Fatalf("expected default forex symbol, got %s", got)
	}

	if got := sim.SetForexSymbol("  gbpusd "); got != "GBPUSD" {
		t.Fatalf("expected GBPUSD, got %s", got)
	}
	if got := sim.Asset(domain.MarketForex); got != "GBPUSD" {
		t.Fatalf("expected GBPUSD after update, got %s", got)
	}
}

func TestSnapshotCoversBothMarkets(t *testing.T) {
	sim := newTestSimulator()

	snaps := sim.Snapshot()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Market != domain.MarketCrypto || snaps[0].Asset != domain.CryptoAssetID {
		t.Fatalf("unexpected first snapshot: %+v", snaps[0])
	}
	if snaps[1].Market != domain.MarketForex {
		t.Fatalf("unexpected second snapshot: %+v", snaps[1])
	}
}

func TestSimulatorDeterministicWithSeed(t *testing.T) {
	a := NewSimulator(fixedNow, rand.New(rand.NewSource(7)))
	b := NewSimulator(fixedNow, rand.New(rand.NewSource(7)))

	a.Tick()
	b.Tick()

	pa, _ := a.CurrentPrice(domain.MarketCrypto)
	pb, _ := b.CurrentPrice(domain.MarketCrypto)
	if pa != pb {
		t.Fatalf("expected identical walks for identical seeds: %f != %f", pa, pb)
	}
}
