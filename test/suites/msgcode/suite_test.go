package test_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestMsgcode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Message Catalog Suite")
}
