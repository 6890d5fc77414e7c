package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/sortbench/pkg/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	got := version.String()
	assert.Contains(t, got, "sortbench ")
	assert.Contains(t, got, "commit: ")
	assert.Contains(t, got, "built: ")
}
