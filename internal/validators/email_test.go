package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (s stubResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if s.mx[name] {
		return []*net.MX{{Host: "mx." + name}}, nil
	}
	return nil, errors.New("no such host")
}

func (s stubResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if s.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(10, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestIsEmailDomainValid(t *testing.T) {
	prev := resolver
	resolver = stubResolver{
		mx:  map[string]bool{"gmail.com": true},
		ips: map[string]bool{"clinica.com.br": true},
	}
	t.Cleanup(func() { resolver = prev })

	assert.True(t, IsEmailDomainValid("ana@gmail.com"))
	assert.True(t, IsEmailDomainValid("dr@clinica.com.br"))
	assert.False(t, IsEmailDomainValid("ana@gmial.con"))
	assert.False(t, IsEmailDomainValid("ana@"))
	assert.False(t, IsEmailDomainValid("@gmail.com"))
	assert.False(t, IsEmailDomainValid("sem-arroba"))
}
