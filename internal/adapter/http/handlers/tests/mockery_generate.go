package tests

// Handler tests use the hand-written testify mock in tasks_test.go. To
// regenerate an equivalent mock with mockery instead:
//
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name TaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_service_mock.go --with-expecter
