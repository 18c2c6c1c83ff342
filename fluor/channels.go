package fluor

// ChannelPair is an interleaved intensity sequence split into its two
// channels. Signal was measured over the region of interest and Reference
// over background.
type ChannelPair struct {
	Signal    []float64
	Reference []float64
}

// Split assigns positions 0, 2, 4, ... to Signal and 1, 3, 5, ... to
// Reference. An odd-length input leaves Reference one shorter.
func Split(means []float64) ChannelPair {
	out := ChannelPair{
		Signal:    make([]float64, 0, (len(means)+1)/2),
		Reference: make([]float64, 0, len(means)/2),
	}

	for i, v := range means {
		if i%2 == 0 {
			out.Signal = append(out.Signal, v)
		} else {
			out.Reference = append(out.Reference, v)
		}
	}

	return out
}

// Len is the number of complete signal/reference pairs.
func (c ChannelPair) Len() int {
	if len(c.Reference) < len(c.Signal) {
		return len(c.Reference)
	}

	return len(c.Signal)
}

// NetSignal returns the background-subtracted signal, one value per complete
// pair. An unpaired trailing signal value is dropped.
func (c ChannelPair) NetSignal() []float64 {
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.Signal[i] - c.Reference[i]
	}

	return out
}
