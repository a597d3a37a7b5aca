package mail

import (
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/dajohi/goemail"
)

// client is an SMTP Mailer sending from a preset address. When the SMTP
// credentials are missing the client is disabled and every send is a no-op,
// so the flows that email users keep working in environments without a mail
// server.
type client struct {
	smtp        *goemail.SMTP
	mailName    string
	mailAddress string
	disabled    bool
}

var _ Mailer = (*client)(nil)

// NewClient returns an SMTP Mailer. Email is considered disabled if any of
// the required credentials are missing.
func NewClient(host, user, password, mailAddress, mailName string) (Mailer, error) {
	if host == "" || user == "" || password == "" {
		return &client{disabled: true}, nil
	}

	h := fmt.Sprintf("smtps://%v:%v@%v", user, password, host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, err
	}

	smtp, err := goemail.NewSMTP(u.String(), &tls.Config{})
	if err != nil {
		return nil, err
	}

	return &client{
		smtp:        smtp,
		mailName:    mailName,
		mailAddress: mailAddress,
	}, nil
}

func (c *client) IsEnabled() bool {
	return !c.disabled
}

func (c *client) SendTo(subject, body, recipient string) error {
	if c.disabled {
		return nil
	}

	msg := goemail.NewMessage(c.mailAddress, subject, body)
	msg.SetName(c.mailName)
	msg.AddTo(recipient)

	return c.smtp.Send(msg)
}
