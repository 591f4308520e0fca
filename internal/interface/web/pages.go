package web

import "html/template"

var (
	dashboardPage = template.Must(template.New("dashboard").Parse(`<h1>Welcome {{.Username}}</h1>
<a href="/book">Book a flight</a> | <a href="/checkin">Check in</a>
{{if .Flights}}<h2>Your flights</h2>
<ul>
{{range .Flights}}<li>{{.ID}}: {{.From}} → {{.To}} ({{.Aircraft}}) — {{.Status}}</li>
{{end}}</ul>
{{end}}`))

	bookPage = template.Must(template.New("book").Parse(`<form action="/book" method="POST">
  From: <select name="from">{{range .Routes}}<option>{{.}}</option>{{end}}</select><br>
  To: <select name="to">{{range .Routes}}<option>{{.}}</option>{{end}}</select><br>
  Aircraft: <select name="aircraft">{{range .Aircraft}}<option>{{.}}</option>{{end}}</select><br>
  <button type="submit">Book</button>
</form>`))

	bookedPage = template.Must(template.New("booked").Parse(`<p>Flight booked! ID: {{.ID}}</p><a href="/dashboard">Back to dashboard</a>`))

	checkinPage = template.Must(template.New("checkin").Parse(`<form action="/checkin" method="POST">
  Flight ID: <input name="id"><br>
  <button type="submit">Check In</button>
</form>`))

	checkedInPage = template.Must(template.New("checkedin").Parse(`<p>Checked in successfully!</p><a href="/dashboard">Back</a>`))
)
