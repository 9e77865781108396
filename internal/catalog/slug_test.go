package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Wireless Mouse":        "wireless-mouse",
		"Café Crème":            "cafe-creme",
		"  spaced   out  ":      "spaced-out",
		"100% Cotton T-Shirt":   "100-cotton-t-shirt",
		"Über-Größe":            "uber-groesse",
		"STRAẞE":                "strasse",
		"---":                   "",
		"":                      "",
		"Ceci n'est pas un nom": "ceci-n-est-pas-un-nom",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
