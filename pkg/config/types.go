package config

// ServiceConfig representa a estrutura raiz do arquivo YAML do serviço.
type ServiceConfig struct {
	Version string         `yaml:"version" validate:"required"`
	Service ServiceDetails `yaml:"service" validate:"required"`
	Todos   TodosConf      `yaml:"todos"`
	Auth    AuthConf       `yaml:"auth"`
}

// ServiceDetails contém os metadados e configurações de runtime do serviço.
type ServiceDetails struct {
	Name    string      `yaml:"name" validate:"required,hostname_rfc1123"`
	Runtime string      `yaml:"runtime" validate:"required,oneof=local lambda"`
	Port    int         `yaml:"port" validate:"required_if=Runtime local"` // Obrigatório apenas se local
	Region  string      `yaml:"region" env:"AWS_REGION"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
}

// TodosConf aponta para a tabela de todos e o bucket de anexos.
//
// Qualquer campo vazio cai para a variável de ambiente correspondente,
// permitindo o deploy Lambda configurar tudo por ambiente.
type TodosConf struct {
	TableName        string `yaml:"table_name" env:"TODOS_TABLE"`
	BucketName       string `yaml:"bucket_name" env:"ATTACHMENTS_BUCKET"`
	URLExpirySeconds int    `yaml:"url_expiry_seconds" env:"UPLOAD_URL_EXPIRY_SECONDS" envDefault:"300"`
	// EndpointOverride redireciona o DynamoDB para uma instância local
	// (ex: http://localhost:8000) em desenvolvimento e teste.
	EndpointOverride string `yaml:"endpoint_override" env:"DYNAMODB_ENDPOINT"`
}

// AuthConf configura a verificação do token de identidade.
//
// O segredo HS256 vem inline (Secret), de variável de ambiente, ou do AWS
// Secrets Manager quando SecretID está definido.
type AuthConf struct {
	Enabled  bool   `yaml:"enabled"`
	Secret   string `yaml:"secret" env:"JWT_SECRET"`
	SecretID string `yaml:"secret_id" env:"JWT_SECRET_ID"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json console"`
	// ServiceName é propagado pelo loader a partir de service.name.
	ServiceName string `yaml:"-"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_ADDR" envDefault:"127.0.0.1:8125"`
	Namespace string `yaml:"namespace"`
}
