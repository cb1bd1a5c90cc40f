package datagen

import (
	"fmt"
	"strings"
)

// Synthetic name material. Draw order matters for reproducibility, so every
// helper takes the shared Rand.

var companyPrefixes = []string{
	"Blue", "North", "Bright", "Clear", "Iron", "Silver", "Atlas", "Nova",
	"Summit", "Vertex", "Pioneer", "Quantum", "Crest", "Harbor", "Beacon", "Orbit",
}

var companyCores = []string{
	"Peak", "Line", "Forge", "Works", "Flow", "Stack", "Grid", "Bridge",
	"Field", "Point", "Wave", "Path", "Core", "Link", "Scale", "Gate",
}

var companySuffixes = []string{
	"Labs", "Systems", "Technologies", "Group", "Solutions", "Software",
	"Analytics", "Digital", "Partners", "Inc",
}

var firstNames = []string{
	"john", "jane", "alice", "bob", "charlie", "diana", "eve", "frank",
	"grace", "henry", "ivan", "julia", "kevin", "laura", "marco", "nina",
}

var lastNames = []string{
	"smith", "johnson", "williams", "brown", "jones", "garcia", "miller",
	"davis", "rodriguez", "martinez", "lopez", "wilson", "anderson", "taylor",
}

var emailDomains = []string{"example.com", "corpmail.com", "workbox.io", "mailhub.net"}

func (r *Rand) companyName() string {
	return r.Choice(companyPrefixes) + r.Choice(companyCores) + " " + r.Choice(companySuffixes)
}

// email builds a unique address; n is a per-run user counter that keeps
// addresses collision-free without extra draws.
func (r *Rand) email(n int) string {
	first := r.Choice(firstNames)
	last := r.Choice(lastNames)
	return strings.ToLower(fmt.Sprintf("%s.%s%d@%s", first, last, n, r.Choice(emailDomains)))
}
