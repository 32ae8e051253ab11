package mailer

import "fmt"

// VerificationEmail builds the message a fresh registration receives. The
// link embeds the verify-email token and points at the front-end.
func VerificationEmail(username, address, link string) Email {
	return Email{
		To:      address,
		Subject: "Verificación de correo electrónico",
		Text:    fmt.Sprintf("Tu código de verificación es %s", link),
		HTML: fmt.Sprintf(`
      <p>Hola %s,</p>
      </br>
      <p>Para continuar con el registro como usuario del catálogo de locaciones de Ecuador Film Commission</p>
      <p>debes verificar tu mail ingresando al siguiente link: <strong><a href="%s" target="_blank"> VERIFICAR EMAIL </a></strong></p>
      </br>
      <p>Si no te has registrado en esta web, por favor ignora este mensaje</p>
    `, username, link),
	}
}

// RecoveryEmail builds the password-recovery message.
func RecoveryEmail(username, address, link string) Email {
	return Email{
		To:      address,
		Subject: "Recuperación de contraseña",
		Text:    fmt.Sprintf("Tu enlace de recuperación es %s", link),
		HTML: fmt.Sprintf(`
      <p>Hola %s,</p>
      </br>
      <p>Hemos recibido una solicitud para restablecer tu contraseña.</p>
      <p>Puedes crear una nueva ingresando al siguiente link: <strong><a href="%s" target="_blank"> RECUPERAR CONTRASEÑA </a></strong></p>
      </br>
      <p>Si no has solicitado este cambio, por favor ignora este mensaje</p>
    `, username, link),
	}
}
