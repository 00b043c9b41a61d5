package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
)

func LoginPage() templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		w.Raw(`<section class="auth-page"><h2>Iniciar sesión</h2>`,
			`<form id="login-form" class="auth-form" hx-post="/login" hx-swap="none">`,
			`<label for="email">Correo electrónico</label>`,
			`<input id="email" name="email" type="email" autocomplete="email" required>`,
			`<label for="password">Contraseña</label>`,
			`<input id="password" name="password" type="password" autocomplete="current-password" required>`,
			`<button type="submit">Entrar</button>`,
			`</form>`,
			`<p>¿No tienes cuenta? <a href="/register">Regístrate</a></p></section>`)
	})
}

func RegisterPage() templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		w.Raw(`<section class="auth-page"><h2>Crear cuenta</h2>`,
			`<form id="register-form" class="auth-form" hx-post="/register" hx-swap="none">`,
			`<label for="name">Nombre</label>`,
			`<input id="name" name="name" type="text" autocomplete="name" required>`,
			`<label for="email">Correo electrónico</label>`,
			`<input id="email" name="email" type="email" autocomplete="email" required>`,
			`<label for="password">Contraseña</label>`,
			`<input id="password" name="password" type="password" autocomplete="new-password" required>`,
			`<button type="submit">Registrarse</button>`,
			`</form>`,
			`<p>¿Ya tienes cuenta? <a href="/login">Inicia sesión</a></p></section>`)
	})
}
