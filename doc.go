// Package todo_quick_service implementa um serviço multi-tenant de listas de
// tarefas sobre DynamoDB e S3, pronto para rodar como Lambda atrás do API
// Gateway ou como servidor HTTP local.
//
// Visão Geral:
// Cada usuário autenticado cria, lista, atualiza e remove seus próprios todos,
// e pode anexar um arquivo a um registro através de uma URL de upload com
// tempo de vida limitado. O isolamento entre usuários é estrutural: toda
// operação de dados é chaveada pela chave composta (userId, todoId), então um
// usuário nunca alcança a partição de outro.
//
// Sub-Pacotes Principais:
//
// 1. todostore:
//   - Adaptador de persistência sobre DynamoDB (CRUD escopado por usuário).
//   - Emissão de handles de upload pré-assinados no S3.
//
// 2. todoservice:
//   - Regras de negócio: geração de identidade, validação e o fluxo de anexo
//     em duas etapas (emitir handle, gravar localização no registro).
//
// 3. transport:
//   - Adaptadores Lambda (API Gateway) e HTTP local (gorilla/mux) sobre o
//     mesmo handler, com correlation id e log de latência.
//
// 4. auth:
//   - Verificação do token de identidade (HS256) e extração do userId.
//
// 5. envloader / pkg/config / pkg/logger / pkg/metrics:
//   - Configuração por YAML + variáveis de ambiente, logging estruturado
//     (zerolog) e métricas (Datadog statsd opcional).
package todo_quick_service
