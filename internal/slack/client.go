package slack

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// newHTTP returns a client that never retries, both Slack calls are made once per event.
func newHTTP(timeout time.Duration, log logze.Logger) (*cliex.HTTP, error) {
	cli, err := cliex.New(cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}
	cli.C().
		SetRetryCount(0).
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return cli, nil
}
