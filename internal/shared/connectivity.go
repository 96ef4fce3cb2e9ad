package shared

import (
	"net"
)

// Connectivity reports whether the host currently has a usable network link.
//
// It must answer without blocking on the network.
type Connectivity interface {
	Online() bool
}

// Static is a [Connectivity] with a fixed answer.
type Static bool

func (s Static) Online() bool { return bool(s) }

// InterfaceProbe reports online when at least one non-loopback interface is up and has an address.
type InterfaceProbe struct {
	interfaces func() ([]net.Interface, error)
	addrs      func(net.Interface) ([]net.Addr, error)
}

// NewInterfaceProbe creates an [InterfaceProbe] backed by the [net] package.
func NewInterfaceProbe() *InterfaceProbe {
	return &InterfaceProbe{
		interfaces: net.Interfaces,
		addrs:      func(i net.Interface) ([]net.Addr, error) { return i.Addrs() },
	}
}

func (p *InterfaceProbe) Online() bool {
	ifaces, err := p.interfaces()
	if err != nil {
		return false
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := p.addrs(iface)
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}
