package sweep

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Grid : 파라미터 이름 → 후보 값 목록. 조합 키 순서가 결정적이도록
// 이름을 정렬해서 데카르트 곱을 만든다.
type Grid map[string][]float64

// Combination : 조합 하나 (이름 → 값)
type Combination map[string]float64

// Key returns a stable string identity like "rsi_long_max=70|stop_loss_pct=0.005".
func (c Combination) Key() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, strconv.FormatFloat(c[name], 'g', -1, 64)))
	}
	return strings.Join(parts, "|")
}

// ParseKey rebuilds a Combination from a Key() string.
func ParseKey(key string) (Combination, error) {
	combo := Combination{}
	if key == "" {
		return combo, nil
	}
	for _, part := range strings.Split(key, "|") {
		name, raw, found := strings.Cut(part, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("malformed combination key part %q", part)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed combination value %q: %w", part, err)
		}
		combo[name] = value
	}
	return combo, nil
}

// Combinations enumerates the full cartesian product in a deterministic order.
func (g Grid) Combinations() []Combination {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []Combination{{}}
	for _, name := range names {
		values := g[name]
		next := make([]Combination, 0, len(combos)*len(values))
		for _, base := range combos {
			for _, v := range values {
				combo := make(Combination, len(base)+1)
				for k, bv := range base {
					combo[k] = bv
				}
				combo[name] = v
				next = append(next, combo)
			}
		}
		combos = next
	}
	return combos
}

// Size returns the total number of combinations.
func (g Grid) Size() int {
	total := 1
	for _, values := range g {
		total *= len(values)
	}
	return total
}
