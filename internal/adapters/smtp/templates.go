package smtp

import (
	"bytes"
	"html/template"

	"storefront-service/internal/core/domain"
)

var orderAdminTmpl = template.Must(template.New("orderAdmin").Parse(`<h2>Новый заказ №{{.Order.OrderNumber}}</h2>
<p><b>Клиент:</b> {{.Payload.FirstName}} {{.Payload.LastName}}</p>
<p><b>Телефон:</b> {{.Payload.Phone}} ({{.Payload.ContactMethod}})</p>
<p><b>Email:</b> {{.Payload.Email}}</p>
<p><b>Адрес:</b> {{.Payload.City}}, {{.Payload.Street}} {{.Payload.House}}{{if .Payload.Apartment}}, кв. {{.Payload.Apartment}}{{end}}, {{.Payload.PostalCode}}</p>
{{if .Payload.Notes}}<p><b>Комментарий:</b> {{.Payload.Notes}}</p>{{end}}
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Товар</th><th>Объём</th><th>Кол-во</th><th>Цена</th></tr>
  {{range .Payload.Items}}
  <tr><td>{{.Name}}</td><td>{{.VariantLabel}}</td><td>{{.Qty}}</td><td>{{printf "%.2f" .Price}}</td></tr>
  {{end}}
</table>
<p><b>Доставка:</b> {{printf "%.2f" .Payload.Shipping}}</p>
<p><b>Итого:</b> {{printf "%.2f" .Payload.Total}}</p>`))

var orderCustomerTmpl = template.Must(template.New("orderCustomer").Parse(`<h2>Спасибо за заказ, {{.Payload.FirstName}}!</h2>
<p>Ваш заказ <b>№{{.Order.OrderNumber}}</b> принят и скоро будет обработан.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Товар</th><th>Объём</th><th>Кол-во</th><th>Цена</th></tr>
  {{range .Payload.Items}}
  <tr><td>{{.Name}}</td><td>{{.VariantLabel}}</td><td>{{.Qty}}</td><td>{{printf "%.2f" .Price}}</td></tr>
  {{end}}
</table>
<p><b>Итого:</b> {{printf "%.2f" .Payload.Total}}</p>
<p>Мы свяжемся с вами по телефону {{.Payload.Phone}} для подтверждения.</p>`))

var contactTmpl = template.Must(template.New("contact").Parse(`<h2>Новое сообщение с сайта</h2>
<p><b>Имя:</b> {{.Name}}</p>
<p><b>Телефон:</b> {{.Phone}}</p>
{{if .Email}}<p><b>Email:</b> {{.Email}}</p>{{end}}
<p><b>Сообщение:</b></p>
<p>{{.Message}}</p>`))

type orderTmplData struct {
	Order   domain.CreatedOrder
	Payload domain.OrderPayload
}

func renderOrderAdminBody(order domain.CreatedOrder, payload domain.OrderPayload) (string, error) {
	return render(orderAdminTmpl, orderTmplData{Order: order, Payload: payload})
}

func renderOrderCustomerBody(order domain.CreatedOrder, payload domain.OrderPayload) (string, error) {
	return render(orderCustomerTmpl, orderTmplData{Order: order, Payload: payload})
}

func renderContactBody(payload domain.ContactPayload) (string, error) {
	return render(contactTmpl, payload)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
