//go:build virtualtabledebug

package metrics

const debugContracts = true
