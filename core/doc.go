// Package core contains canonical QPU backend contracts, domain entities,
// and error envelopes. Vendor adapters and transport implementations must
// depend on this package; core must not depend on any vendor-specific or
// transport-specific package.
package core
