package textrec

import "strings"

// DecodeGreedy performs greedy CTC decoding over per-timestep class
// probabilities. Class 0 is the blank; repeated classes collapse unless
// separated by a blank. The returned confidence is the mean probability
// of the emitted characters, or 0 when nothing was emitted.
func DecodeGreedy(probs [][]float32, charset []rune) (string, float64) {
	var sb strings.Builder
	var sum float64
	emitted := 0
	prev := -1

	for _, frame := range probs {
		best, score := argmax(frame)
		if best != prev && best > 0 {
			idx := best - 1
			if idx < len(charset) {
				sb.WriteRune(charset[idx])
				sum += float64(score)
				emitted++
			}
		}
		prev = best
	}

	if emitted == 0 {
		return "", 0
	}
	return sb.String(), sum / float64(emitted)
}

func argmax(frame []float32) (int, float32) {
	if len(frame) == 0 {
		return -1, 0
	}
	best := 0
	for i, v := range frame[1:] {
		if v > frame[best] {
			best = i + 1
		}
	}
	return best, frame[best]
}
