package service

import "fmt"

func missedEmailTemplate(goalTitle, goalID, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("You missed your check-in for %q", goalTitle)
	goalURL := fmt.Sprintf("%s/goals/%s", appURL, goalID)
	body := fmt.Sprintf(`The deadline for %q passed without a check-in, so your streak has been reset.

Tomorrow is a fresh start:
%s

Your pod can see your missed day. Showing up anyway is the whole point.

Best,
The %s Team`, goalTitle, goalURL, appName)

	return subject, body
}
