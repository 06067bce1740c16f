//go:build !virtualtabledebug

package metrics

const debugContracts = false
