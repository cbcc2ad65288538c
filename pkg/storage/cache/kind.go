package cache

import "fmt"

type Kind string

const (
	KindNone  Kind = "none"
	KindLocal Kind = "local"
	KindRedis Kind = "redis"
)

// Set implements flag.Value.
func (k *Kind) Set(s string) error {
	switch s {
	case "none", "":
		*k = KindNone
	case "local":
		*k = KindLocal
	case "redis":
		*k = KindRedis
	default:
		return fmt.Errorf("unknown source cache kind: %q", s)
	}
	return nil
}

func (k Kind) String() string {
	return string(k)
}
