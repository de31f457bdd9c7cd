package dns_test

import (
	"fmt"
	"log"

	"github.com/mjl-/imf/dns"
)

func ExampleParseDomain() {
	basic, err := dns.ParseDomain("Example.COM")
	if err != nil {
		log.Fatalf("parse domain: %v", err)
	}
	fmt.Println(basic)

	smile, err := dns.ParseDomain("☺.example")
	if err != nil {
		log.Fatalf("parse domain: %v", err)
	}
	fmt.Println(smile)

	// Output:
	// example.com
	// ☺.example/xn--74h.example
}
