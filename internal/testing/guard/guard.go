package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("SHOPVIMA_TEST_MODE") == "" {
			_ = os.Setenv("SHOPVIMA_TEST_MODE", "1")
		}
	})
}
