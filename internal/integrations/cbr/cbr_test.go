package cbr

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyRateResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgram>
          <KeyRate>
            <KR>
              <DT>2024-01-15T00:00:00+03:00</DT>
              <Rate>16.00</Rate>
            </KR>
            <KR>
              <DT>2024-01-14T00:00:00+03:00</DT>
              <Rate>15.00</Rate>
            </KR>
          </KeyRate>
        </diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func newTestClient() *CBRClient {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &CBRClient{log: log}
}

func TestParseXMLResponse_TakesLatestRate(t *testing.T) {
	rate, err := newTestClient().parseXMLResponse([]byte(keyRateResponse))

	require.NoError(t, err)
	assert.Equal(t, 16.00, rate)
}

func TestParseXMLResponse_NoRateData(t *testing.T) {
	empty := `<?xml version="1.0"?><Envelope><Body></Body></Envelope>`

	_, err := newTestClient().parseXMLResponse([]byte(empty))

	assert.Error(t, err)
}

func TestParseXMLResponse_MalformedXML(t *testing.T) {
	_, err := newTestClient().parseXMLResponse([]byte("<unclosed"))

	assert.Error(t, err)
}
