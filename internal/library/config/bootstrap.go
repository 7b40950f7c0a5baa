package config

// BootstrapConfig - первый администратор (SeniorStaff), создаваемый при старте.
type BootstrapConfig struct {
	AdminUsername string `yaml:"admin_username" env:"LIBRARY_BOOTSTRAP_ADMIN_USERNAME" env-default:""`
	AdminPassword string `yaml:"admin_password" env:"LIBRARY_BOOTSTRAP_ADMIN_PASSWORD" env-default:""`
}

// Enabled сообщает, задан ли администратор.
func (b *BootstrapConfig) Enabled() bool {
	return b.AdminUsername != ""
}
