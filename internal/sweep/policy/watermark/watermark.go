// Package watermark implements the high/low watermark capacity rule:
// once usage crosses the high watermark, a cleanup pass drives it down
// to the low watermark.
package watermark

type Policy struct {
	High int64
	Low  int64
}

func (p *Policy) BytesToFree(currentSize int64) (int64, error) {
	if currentSize > p.High {
		return currentSize - p.Low, nil
	}
	return 0, nil
}
