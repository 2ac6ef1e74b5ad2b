package domain

type DeviceInfo struct {
	ID                int
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

func (d DeviceInfo) IsInput() bool {
	return d.MaxInputChannels > 0
}
