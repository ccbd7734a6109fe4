package market

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"yqt-signal-desk/internal/domain"
)

const (
	cryptoBasePrice  = 55432.21
	cryptoSeedSpread = 1000.0
	cryptoTickJitter = 5.0

	forexBasePrice  = 1.0845
	forexSeedSpread = 0.01
	forexTickJitter = 0.00005

	pointTimeLayout = "15:04"
)

type series struct {
	current float64
	jitter  float64
	history []domain.PricePoint
}

// Simulator maintains the two synthetic price series. It is owned by
// the application context and shared by the ticker job, the HTTP
// handlers, and the TUI, so access is guarded by a single lock.
type Simulator struct {
	now func() time.Time
	rng *rand.Rand

	mu          sync.RWMutex
	forexSymbol string
	series      map[domain.MarketType]*series
}

// NewSimulator seeds both history windows with capacity points spaced
// one minute apart ending at now, and sets each current price to the
// latest seeded point. Pass nil for now/rng to get wall-clock time and
// a time-seeded source.
func NewSimulator(now func() time.Time, rng *rand.Rand) *Simulator {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Simulator{
		now:         now,
		rng:         rng,
		forexSymbol: domain.DefaultForexSymbol,
		series: map[domain.MarketType]*series{
			domain.MarketCrypto: {jitter: cryptoTickJitter},
			domain.MarketForex:  {jitter: forexTickJitter},
		},
	}
	s.seed(domain.MarketCrypto, cryptoBasePrice-cryptoSeedSpread/2, cryptoSeedSpread)
	s.seed(domain.MarketForex, forexBasePrice-forexSeedSpread/2, forexSeedSpread)
	return s
}

func (s *Simulator) seed(market domain.MarketType, base, spread float64) {
	ser := s.series[market]
	end := s.now()
	ser.history = make([]domain.PricePoint, 0, domain.HistoryWindowCapacity)
	for i := domain.HistoryWindowCapacity - 1; i >= 0; i-- {
		ts := end.Add(-time.Duration(i) * time.Minute)
		ser.history = append(ser.history, domain.PricePoint{
			Time:  ts.Format(pointTimeLayout),
			Price: base + s.rng.Float64()*spread,
		})
	}
	ser.current = ser.history[len(ser.history)-1].Price
}

// Tick advances both series by one random-walk step. The oldest point
// is evicted so the window never grows past its capacity.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().Format(pointTimeLayout)
	for _, ser := range s.series {
		next := ser.current + (s.rng.Float64()-0.5)*2*ser.jitter
		if len(ser.history) >= domain.HistoryWindowCapacity {
			ser.history = append(ser.history[1:len(ser.history):len(ser.history)], domain.PricePoint{Time: ts, Price: next})
		} else {
			ser.history = append(ser.history, domain.PricePoint{Time: ts, Price: next})
		}
		ser.current = next
	}
}

// CurrentPrice returns the latest scalar value for a market.
func (s *Simulator) CurrentPrice(market domain.MarketType) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ser, ok := s.series[market]
	if !ok {
		return 0, fmt.Errorf("unsupported market: %s", market)
	}
	return ser.current, nil
}

// RecentHistory returns the last n points of a market's window, oldest
// first. If n exceeds the window size, all available points are
// returned rather than erroring.
func (s *Simulator) RecentHistory(market domain.MarketType, n int) []domain.PricePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ser, ok := s.series[market]
	if !ok || n <= 0 {
		return nil
	}
	if n > len(ser.history) {
		n = len(ser.history)
	}
	out := make([]domain.PricePoint, n)
	copy(out, ser.history[len(ser.history)-n:])
	return out
}

// History returns a copy of the full window, oldest first.
func (s *Simulator) History(market domain.MarketType) []domain.PricePoint {
	return s.RecentHistory(market, domain.HistoryWindowCapacity)
}

// Asset returns the asset identifier for a market: the fixed crypto
// pair, or the current forex symbol.
func (s *Simulator) Asset(market domain.MarketType) string {
	if market == domain.MarketCrypto {
		return domain.CryptoAssetID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forexSymbol
}

// SetForexSymbol stores the user-provided forex symbol, trimmed and
// uppercased. This is a display field, not a trust boundary, so an
// empty value is passed through as-is.
func (s *Simulator) SetForexSymbol(symbol string) string {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forexSymbol = normalized
	return normalized
}

// Snapshot returns the current state of both markets for display.
func (s *Simulator) Snapshot() []domain.MarketSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MarketSnapshot, 0, len(domain.SupportedMarkets))
	for _, market := range domain.SupportedMarkets {
		asset := domain.CryptoAssetID
		if market == domain.MarketForex {
			asset = s.forexSymbol
		}
		out = append(out, domain.MarketSnapshot{
			Market: market,
			Asset:  asset,
			Price:  s.series[market].current,
		})
	}
	return out
}
