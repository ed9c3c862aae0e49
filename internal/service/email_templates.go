package service

import (
	"fmt"

	"github.com/templui/medtrack/internal/model"
)

func reminderEmailTemplate(alert model.Alert, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("%s: %s", alert.Title, alert.MedicineName)
	body := fmt.Sprintf(`%s

Once you have taken it, tick it off in your list:
%s

Best,
The %s Team`, alert.Body, appURL, appName)

	return subject, body
}
