package canvas

// cacheState is either invalid{} or valid{bitmap}.
type cacheState interface {
	isCacheState()
}

type invalid struct{}

type valid struct {
	bitmap *Bitmap
}

func (invalid) isCacheState() {}
func (valid) isCacheState()   {}
