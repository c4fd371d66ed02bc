//go:build !windows

package check_dns

import (
	"fmt"

	"github.com/miekg/dns"
)

var resolvConf = "/etc/resolv.conf"

func adapterAddress() (string, error) {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		return "", fmt.Errorf("read %s: %s", resolvConf, err.Error())
	}
	if len(conf.Servers) == 0 {
		return "", fmt.Errorf("no valid nameserver found in %s", resolvConf)
	}

	return conf.Servers[0], nil
}
