package email

const layoutTop = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">`
const layoutBottom = `<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;" />
<p style="color: #999; font-size: 12px;">B2B Portal</p></div>`

const registrationApprovedTmpl = layoutTop + `
<h2 style="color: #333;">Registration approved</h2>
<p>Hello {{.Company}},</p>
<p>Your registration has been approved. You can now sign in and place orders.</p>
<p><a href="{{.URL}}" style="background-color: #277a3c; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Open portal</a></p>
` + layoutBottom

const registrationRejectedTmpl = layoutTop + `
<h2 style="color: #333;">Registration rejected</h2>
<p>Hello {{.Company}},</p>
<p>Unfortunately your registration request was not approved. Contact our manager if you believe this is a mistake.</p>
` + layoutBottom

const orderConfirmationTmpl = layoutTop + `
<h2 style="color: #333;">Order {{.OrderNumber}} received</h2>
<p>Hello {{.Company}}, thank you for your order.</p>
<table style="width: 100%; border-collapse: collapse;">
{{range .Items}}<tr>
<td style="padding: 6px 0; border-bottom: 1px solid #eee;">{{.Name}}</td>
<td style="padding: 6px 0; border-bottom: 1px solid #eee; text-align: right;">{{.Quantity}} × {{.Price}}</td>
</tr>{{end}}
</table>
<p><strong>Total: {{.Total}} AMD</strong></p>
<p><a href="{{.URL}}">View order</a></p>
` + layoutBottom

const orderStatusTmpl = layoutTop + `
<h2 style="color: #333;">Order {{.OrderNumber}} updated</h2>
<p>Hello {{.Company}},</p>
<p>The {{.Kind}} status of your order is now: <strong>{{.Status}}</strong>.</p>
<p><a href="{{.URL}}">View order</a></p>
` + layoutBottom

const newOfferTmpl = layoutTop + `
<h2 style="color: #333;">New offer</h2>
<p>Hello {{.Company}},</p>
<p>Our manager has answered your inquiry with an offer.</p>
<p><a href="{{.URL}}">View offer</a></p>
` + layoutBottom

const passwordResetTmpl = layoutTop + `
<h2 style="color: #333;">Password recovery</h2>
<p>You requested a password reset for your account.</p>
<p><a href="{{.URL}}" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Set a new password</a></p>
<p style="color: #666; font-size: 14px;">The link is valid for 1 hour. If you did not request a reset, ignore this email.</p>
` + layoutBottom

const adminNewRegistrationTmpl = layoutTop + `
<h2 style="color: #333;">New registration</h2>
<p>{{.Company}} ({{.Email}}, tax id {{.TaxID}}) is waiting for approval.</p>
<p><a href="{{.URL}}">Open admin panel</a></p>
` + layoutBottom

const adminNewOrderTmpl = layoutTop + `
<h2 style="color: #333;">New order {{.OrderNumber}}</h2>
<p>{{.Company}} placed an order for {{.Total}} AMD.</p>
<p><a href="{{.URL}}">View order</a></p>
` + layoutBottom

const adminNewInquiryTmpl = layoutTop + `
<h2 style="color: #333;">New inquiry</h2>
<p>{{.Company}} submitted a product inquiry.</p>
<p><a href="{{.URL}}">Open admin panel</a></p>
` + layoutBottom
