package logsvc

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

func TestFields(t *testing.T) {
	got := Fields([]interface{}{
		errors.New("boom"),
		map[string]interface{}{"username": "s1"},
		records.User{Username: "t1", Role: records.RoleTeacher},
		nil,
		42,
	})
	assert.Equal(t, map[string]interface{}{
		"error":    "boom",
		"username": "s1",
		"user":     "t1",
		"role":     "teacher",
		"arg4":     42,
	}, got)
}

func TestRollbarLogger_local(t *testing.T) {
	var buf bytes.Buffer
	conf := &core.Config{AppName: "Marksheet", Env: "TEST"}
	logger := NewRollbarLogger(NewConsoleLogger(&buf, "api", conf), conf)
	logger.Enable(false)

	logger.Info("user created", map[string]interface{}{"username": "s1"})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "user created", line["message"])
	assert.Equal(t, "s1", line["username"])
	assert.Equal(t, "api", line["component"])
	assert.Equal(t, "Marksheet", line["app"])

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String(), "debug is off outside debug mode")
}
