package interact

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestInteract(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Interact Suite")
}
