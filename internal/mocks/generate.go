package mocks

//go:generate mockery --name CompletionStore --srcpkg github.com/projecteax/mozgnamaxa/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Bus --srcpkg github.com/projecteax/mozgnamaxa/internal/notify --output ./notify --outpkg notifymocks --with-expecter
