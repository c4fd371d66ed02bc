//go:build windows

package check_dns

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"unsafe"

	"github.com/miekg/dns"
	"golang.org/x/sys/windows"
)

// adapterAddress returns the first dns server of the first network adapter.
// ref: https://go.dev/src/net/interface_windows.go
func adapterAddress() (string, error) {
	adapters, err := adapterAddresses()
	if err != nil {
		return "", err
	}
	if adapters == nil || adapters.FirstDnsServerAddress == nil {
		return "", fmt.Errorf("no valid nameserver found")
	}

	nameserver := adapters.FirstDnsServerAddress.Address.IP().String()
	if net.ParseIP(nameserver) == nil {
		nameserver = dns.Fqdn(nameserver)
	}
	if net.ParseIP(nameserver) == nil {
		return "", fmt.Errorf("invalid nameserver: %s", nameserver)
	}

	return nameserver, nil
}

func adapterAddresses() (*windows.IpAdapterAddresses, error) {
	size := uint32(15000) // recommended initial size
	for {
		buf := make([]byte, size)
		first := (*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0]))
		err := windows.GetAdaptersAddresses(syscall.AF_UNSPEC, windows.GAA_FLAG_INCLUDE_PREFIX, 0, first, &size)
		if err == nil {
			if size == 0 {
				return nil, nil
			}

			return first, nil
		}

		var errno syscall.Errno
		if !errors.As(err, &errno) || errno != syscall.ERROR_BUFFER_OVERFLOW || size <= uint32(len(buf)) {
			return nil, os.NewSyscallError("GetAdaptersAddresses", err)
		}
	}
}
