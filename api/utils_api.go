package api

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
)

// serverIpNet finds the first non-loopback IPv4 address of the host.
// Analytics rows are keyed on it; loopback is used when nothing else is up.
func serverIpNet() net.IPNet {
	fallback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list interfaces:", err)
		return fallback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}
