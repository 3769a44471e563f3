package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds the parameters of one simulation run. It is immutable for
// the run's duration; NewSimulator copies what it needs.
type Config struct {
	// NodeCount is the number of contending stations (key "N").
	NodeCount int
	// PacketLength is the fixed transmission duration in ticks (key "L").
	PacketLength int
	// MaxAttempts is the retransmission limit M; a node exceeding it
	// drops its packet and resets (key "M").
	MaxAttempts int
	// Windows is the contention-window sequence R[0..M]; Windows[i] is
	// the backoff bound after the i-th consecutive collision (key "R").
	Windows []int
	// TotalTicks is the simulation horizon T (key "T").
	TotalTicks int
}

// ParseConfig reads the key-prefixed text format: one parameter per line,
// the first field naming it (N, L, M, T take one integer; R takes a
// whitespace-separated sequence). Unknown keys are logged and skipped.
// The result is not validated; callers run Validate before simulating.
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		key, values := fields[0], fields[1:]

		switch key {
		case "N":
			n, err := parseSingleInt(key, values)
			if err != nil {
				return Config{}, err
			}
			cfg.NodeCount = n
		case "L":
			n, err := parseSingleInt(key, values)
			if err != nil {
				return Config{}, err
			}
			cfg.PacketLength = n
		case "M":
			n, err := parseSingleInt(key, values)
			if err != nil {
				return Config{}, err
			}
			cfg.MaxAttempts = n
		case "R":
			if len(values) == 0 {
				return Config{}, fmt.Errorf("parameter R: expected at least one value")
			}
			windows := make([]int, 0, len(values))
			for _, v := range values {
				w, err := strconv.Atoi(v)
				if err != nil {
					return Config{}, fmt.Errorf("parameter R: invalid value %q: %w", v, err)
				}
				windows = append(windows, w)
			}
			cfg.Windows = windows
		case "T":
			n, err := parseSingleInt(key, values)
			if err != nil {
				return Config{}, err
			}
			cfg.TotalTicks = n
		default:
			logrus.Warnf("Unknown parameter: %s", key)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	return cfg, nil
}

func parseSingleInt(key string, values []string) (int, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("parameter %s: expected exactly one value, got %d", key, len(values))
	}
	n, err := strconv.Atoi(values[0])
	if err != nil {
		return 0, fmt.Errorf("parameter %s: invalid value %q: %w", key, values[0], err)
	}
	return n, nil
}

// LoadConfig reads, parses, and validates a config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run. The arbitration
// step itself never checks these preconditions: a zero window would make
// GenerateBackoff divide by zero, and a short R-sequence would index out
// of range on collision.
func (c Config) Validate() error {
	if c.NodeCount <= 0 {
		return fmt.Errorf("node count N must be positive, got %d", c.NodeCount)
	}
	if c.PacketLength <= 0 {
		return fmt.Errorf("packet length L must be positive, got %d", c.PacketLength)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max retransmission attempts M must be non-negative, got %d", c.MaxAttempts)
	}
	if c.TotalTicks <= 0 {
		return fmt.Errorf("total simulation time T must be positive, got %d", c.TotalTicks)
	}
	if len(c.Windows) != c.MaxAttempts+1 {
		return fmt.Errorf("contention window sequence R must have M+1 = %d entries, got %d",
			c.MaxAttempts+1, len(c.Windows))
	}
	for i, w := range c.Windows {
		if w <= 0 {
			return fmt.Errorf("contention window R[%d] must be positive, got %d", i, w)
		}
	}
	return nil
}
