// Package core contains the mobile money domain vocabulary: canonical
// statuses, the normalized error taxonomy, configuration and the shared
// observability plumbing. Provider clients depend on this package; core must
// not depend on transport or provider packages.
package core
