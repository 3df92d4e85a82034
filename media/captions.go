package media

import (
	"fmt"
	"math/rand"
	"sort"
)

// Caption is one selected caption block: a category label and the chosen
// text beneath it.
type Caption struct {
	Label string
	Text  string
}

// SelectCaptions picks exactly two distinct categories uniformly at random,
// then one candidate string from each. The randomness source is injected so
// the drawing path stays deterministic and the selection is seedable in
// tests; production callers pass a time-seeded rand.
func SelectCaptions(rng *rand.Rand, labels map[string]string, contents map[string][]string) ([]Caption, error) {
	keys := make([]string, 0, len(contents))
	for key, items := range contents {
		if len(items) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) < 2 {
		return nil, fmt.Errorf("need at least 2 non-empty caption categories, have %d", len(keys))
	}

	// map iteration order is random but not uniform; sort before shuffling
	sort.Strings(keys)
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	captions := make([]Caption, 0, 2)
	for _, key := range keys[:2] {
		items := contents[key]
		label, ok := labels[key]
		if !ok {
			label = key
		}
		captions = append(captions, Caption{
			Label: label,
			Text:  items[rng.Intn(len(items))],
		})
	}
	return captions, nil
}
